package dashboard

import "io"

// Template names the controller renders. The embedded template set under
// templates/ defines one file per page.
const (
	TemplateDashboard = "dashboard"
	TemplateProducts  = "products"
	TemplateSales     = "sales"
)

// Renderer describes the template renderer contract needed by the page
// controller. NewTemplateRenderer returns the embedded-template default.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}
