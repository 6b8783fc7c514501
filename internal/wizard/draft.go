package wizard

// Consents are the legal agreements collected on the last step.
type Consents struct {
	Terms          bool
	Privacy        bool
	Disclaimer     bool
	ReturnPolicy   bool
	DataProcessing bool

	// Marketing is optional and never blocks registration.
	Marketing bool
}

// MandatoryGiven reports whether every required agreement is accepted.
func (c Consents) MandatoryGiven() bool {
	return c.Terms && c.Privacy && c.Disclaimer && c.ReturnPolicy && c.DataProcessing
}

// Draft is everything the customer has typed so far. It lives as long as
// the wizard and is never persisted.
type Draft struct {
	Username        string
	FullName        string
	Password        string
	ConfirmPassword string
	Email           string

	CountryCode    string
	PhoneNumber    string
	WhatsAppNumber string

	DateOfBirth       string // YYYY-MM-DD
	TimeOfBirth       string // HH:MM
	PlaceOfBirth      string
	PreferredLanguage string

	OTP string

	Consents Consents
}

// NewDraft returns an empty draft with the form defaults applied.
func NewDraft() Draft {
	return Draft{
		CountryCode:       DefaultCountryCode,
		PreferredLanguage: DefaultLanguage,
	}
}
