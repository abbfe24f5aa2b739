package contact

// ContactRequest is the payload submitted by the website form. It lives for
// one request and is never stored.
type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,contact_email"`
	Company string `json:"company,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message" validate:"required,max=5000"`
}

// Field names as they appear in the JSON payload.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldCompany = "company"
	FieldPhone   = "phone"
	FieldMessage = "message"
)

// MaxMessageLength is the longest accepted message, in characters.
const MaxMessageLength = 5000

// Set assigns value to the named field. It reports false for unknown names.
func (r *ContactRequest) Set(field, value string) bool {
	switch field {
	case FieldName:
		r.Name = value
	case FieldEmail:
		r.Email = value
	case FieldCompany:
		r.Company = value
	case FieldPhone:
		r.Phone = value
	case FieldMessage:
		r.Message = value
	default:
		return false
	}
	return true
}
