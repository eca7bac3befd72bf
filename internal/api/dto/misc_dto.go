package dto

// ContactRequest payload for capturing a customer contact.
type ContactRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// TranslateRequest payload for menu text translation.
type TranslateRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"targetLanguage"`
}

// ChatInteractionRequest payload for recording a customer chat exchange.
type ChatInteractionRequest struct {
	QRToken   string `json:"qrToken"`
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}
