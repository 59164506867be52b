package domain

// ContentType values a source can declare. Anything else is treated as blog.
const (
	ContentTypeBlog  = "blog"
	ContentTypeAudio = "audio"
	ContentTypeVideo = "video"
)

// Source represents a configured feed source. Lower priority numbers mean
// more important sources.
type Source struct {
	Name        string `yaml:"name" json:"name"`
	URL         string `yaml:"url" json:"url"`
	Website     string `yaml:"website,omitempty" json:"website,omitempty"`
	Priority    int    `yaml:"priority" json:"priority"`
	ContentType string `yaml:"content_type" json:"content_type"`
	Enabled     bool   `yaml:"enabled" json:"enabled"`
}
