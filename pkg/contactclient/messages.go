package contactclient

import (
	"golang.org/x/text/language"

	"github.com/noah-isme/unagency-contact/pkg/contactform"
)

// Messages is the user-facing text for one language.
type Messages struct {
	Success string
	Failure string
	Fields  map[contactform.Field]string
}

// FieldError returns the localized message for a rejected field.
func (m Messages) FieldError(field contactform.Field) string {
	if msg, ok := m.Fields[field]; ok {
		return msg
	}
	return contactform.FieldText(field)
}

var supported = []language.Tag{language.English, language.Spanish}

var matcher = language.NewMatcher(supported)

var catalog = map[language.Tag]Messages{
	language.English: {
		Success: "Message sent successfully! We'll contact you soon.",
		Failure: "There was an error sending the message. Please try again.",
		Fields: map[contactform.Field]string{
			contactform.FieldName:    contactform.FieldText(contactform.FieldName),
			contactform.FieldEmail:   contactform.FieldText(contactform.FieldEmail),
			contactform.FieldMessage: contactform.FieldText(contactform.FieldMessage),
		},
	},
	language.Spanish: {
		Success: "¡Mensaje enviado exitosamente! Te contactaremos pronto.",
		Failure: "Hubo un error al enviar el mensaje. Por favor, intenta nuevamente.",
		Fields: map[contactform.Field]string{
			contactform.FieldName:    "El nombre debe tener entre 2 y 100 caracteres y solo letras",
			contactform.FieldEmail:   "Por favor ingresa un email válido",
			contactform.FieldMessage: "El mensaje debe tener entre 10 y 2000 caracteres",
		},
	},
}

// MessagesFor picks the closest supported language for a BCP 47 tag such as
// "es-MX". Unparseable or unsupported tags fall back to English.
func MessagesFor(tag string) Messages {
	parsed, err := language.Parse(tag)
	if err != nil {
		return catalog[language.English]
	}
	_, index, confidence := matcher.Match(parsed)
	if confidence == language.No {
		return catalog[language.English]
	}
	return catalog[supported[index]]
}
