package config

// Srcsetfile is the structure of srcset.yaml.
type Srcsetfile struct {
	Version string     `yaml:"version"`
	Images  ImagesDTO  `yaml:"images"`
	Pages   []*PageDTO `yaml:"pages"`
	Data    string     `yaml:"data"`
}

// ImagesDTO configures the derivative pipeline.
type ImagesDTO struct {
	Source  string         `yaml:"source"`
	Output  string         `yaml:"output"`
	URLPath string         `yaml:"urlPath"`
	Widths  []int          `yaml:"widths"`
	Formats []string       `yaml:"formats"`
	Quality map[string]int `yaml:"quality"`
	Workers int            `yaml:"workers"`
}

// PageDTO is one page rendered by a build.
type PageDTO struct {
	Src string `yaml:"src"`
	Out string `yaml:"out"`
}
