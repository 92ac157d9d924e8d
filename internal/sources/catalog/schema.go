package catalog

// TypeEntry is one registered content type in catalog.yaml
type TypeEntry struct {
	Name          string `yaml:"name" validate:"required,max=64"`
	Label         string `yaml:"label"`
	SingularLabel string `yaml:"singular_label"`
}

// ItemEntry is one content item in catalog.yaml
type ItemEntry struct {
	ID        int64  `yaml:"id" validate:"gt=0"`
	Type      string `yaml:"type" validate:"required"`
	Title     string `yaml:"title"`
	Status    string `yaml:"status" validate:"omitempty,oneof=publish draft pending private"`
	Author    string `yaml:"author"`
	Permalink string `yaml:"permalink" validate:"omitempty,uri"`
	Sticky    bool   `yaml:"sticky"`
}

// UserEntry is one admin user in catalog.yaml
type UserEntry struct {
	ID            string   `yaml:"id" validate:"required,max=128"`
	DisplayName   string   `yaml:"display_name"`
	Role          string   `yaml:"role" validate:"required,oneof=administrator editor author contributor"`
	EditableTypes []string `yaml:"editable_types"`
	Disabled      bool     `yaml:"disabled"`
}

// Config is the root structure for catalog.yaml
//
//	content_types:
//	  - name: post
//	    label: Posts
//	items:
//	  - id: 42
//	    type: post
//	    title: Hello
//	users:
//	  - id: alice
//	    role: administrator
type Config struct {
	ContentTypes []TypeEntry `yaml:"content_types"`
	Items        []ItemEntry `yaml:"items"`
	Users        []UserEntry `yaml:"users"`
}
