package catalog

// StyleConcept is one generated design proposal. ImagePrompt stays in
// English for the image model; the descriptive fields are market language.
type StyleConcept struct {
	ID          string
	Name        string
	Description string
	Material    string
	Elements    string
	ColorTheme  string
	ImagePrompt string
	ImageRef    string
}
