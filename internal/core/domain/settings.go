package domain

// DefaultSystemPrompt is used until a system prompt has been saved.
const DefaultSystemPrompt = "You are a helpful AI assistant."

// DefaultModelID is the model selected until another is chosen.
const DefaultModelID = "gpt-3.5"

// Model is a selectable language model identifier.
type Model struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Models returns the built-in model catalog.
func Models() []Model {
	return []Model{
		{ID: "gpt-3.5", Name: "GPT-3.5 Turbo"},
		{ID: "gpt-4", Name: "GPT-4"},
		{ID: "llama2", Name: "Llama 2"},
	}
}

// FindModel looks up a model in the catalog.
func FindModel(id string) (Model, bool) {
	for _, m := range Models() {
		if m.ID == id {
			return m, true
		}
	}
	return Model{}, false
}

// Theme is the account colour scheme preference.
type Theme string

// Available themes.
const (
	ThemeSystem Theme = "system"
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
)

// IsValid returns true if the theme is recognised.
func (t Theme) IsValid() bool {
	switch t {
	case ThemeSystem, ThemeLight, ThemeDark:
		return true
	default:
		return false
	}
}

// Profile holds account display preferences.
type Profile struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Theme  Theme  `json:"theme"`
}

// DefaultProfile returns an empty profile following the system theme.
func DefaultProfile() Profile {
	return Profile{Theme: ThemeSystem}
}
