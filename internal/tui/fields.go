package tui

import "github.com/jaiguruastro/astroremedy/internal/wizard"

type fieldID int

const (
	fieldFullName fieldID = iota
	fieldUsername
	fieldPhone
	fieldEmail
	fieldPassword
	fieldConfirmPassword
	fieldOTP
	fieldWhatsApp
	fieldDateOfBirth
	fieldTimeOfBirth
	fieldPlaceOfBirth
	numFields
)

type fieldSpec struct {
	label       string
	placeholder string
	secret      bool
	limit       int
}

var fieldSpecs = [numFields]fieldSpec{
	fieldFullName:        {label: "Full Name *", placeholder: "Enter your full name", limit: 120},
	fieldUsername:        {label: "Username *", placeholder: "Choose a unique username", limit: 40},
	fieldPhone:           {label: "Phone Number *", placeholder: "Your mobile number", limit: 15},
	fieldEmail:           {label: "Email (Optional - for recovery)", placeholder: "Enter your email address", limit: 254},
	fieldPassword:        {label: "Password *", placeholder: "Create a strong password", secret: true, limit: 128},
	fieldConfirmPassword: {label: "Confirm Password *", placeholder: "Confirm your password", secret: true, limit: 128},
	fieldOTP:             {label: "Enter Verification Code *", placeholder: "6-digit code", limit: 6},
	fieldWhatsApp:        {label: "WhatsApp Number (Optional)", placeholder: "WhatsApp number (if different)", limit: 15},
	fieldDateOfBirth:     {label: "Date of Birth (Optional)", placeholder: "YYYY-MM-DD", limit: 10},
	fieldTimeOfBirth:     {label: "Time of Birth (Optional)", placeholder: "HH:MM", limit: 5},
	fieldPlaceOfBirth:    {label: "Place of Birth (Optional)", placeholder: "City, State, Country", limit: 120},
}

func (f fieldID) get(d wizard.Draft) string {
	switch f {
	case fieldFullName:
		return d.FullName
	case fieldUsername:
		return d.Username
	case fieldPhone:
		return d.PhoneNumber
	case fieldEmail:
		return d.Email
	case fieldPassword:
		return d.Password
	case fieldConfirmPassword:
		return d.ConfirmPassword
	case fieldOTP:
		return d.OTP
	case fieldWhatsApp:
		return d.WhatsAppNumber
	case fieldDateOfBirth:
		return d.DateOfBirth
	case fieldTimeOfBirth:
		return d.TimeOfBirth
	case fieldPlaceOfBirth:
		return d.PlaceOfBirth
	}
	return ""
}

func (f fieldID) set(d *wizard.Draft, v string) {
	switch f {
	case fieldFullName:
		d.FullName = v
	case fieldUsername:
		d.Username = v
	case fieldPhone:
		d.PhoneNumber = v
	case fieldEmail:
		d.Email = v
	case fieldPassword:
		d.Password = v
	case fieldConfirmPassword:
		d.ConfirmPassword = v
	case fieldOTP:
		d.OTP = v
	case fieldWhatsApp:
		d.WhatsAppNumber = v
	case fieldDateOfBirth:
		d.DateOfBirth = v
	case fieldTimeOfBirth:
		d.TimeOfBirth = v
	case fieldPlaceOfBirth:
		d.PlaceOfBirth = v
	}
}

type selectorID int

const (
	selectCountryCode selectorID = iota
	selectLanguage
)

func (s selectorID) label() string {
	if s == selectLanguage {
		return "Preferred Language"
	}
	return "Country Code *"
}

func (s selectorID) options() []wizard.Option {
	if s == selectLanguage {
		return wizard.Languages
	}
	return wizard.CountryCodes
}

func (s selectorID) get(d wizard.Draft) string {
	if s == selectLanguage {
		return d.PreferredLanguage
	}
	return d.CountryCode
}

func (s selectorID) set(d *wizard.Draft, v string) {
	if s == selectLanguage {
		d.PreferredLanguage = v
		return
	}
	d.CountryCode = v
}

type consentID int

const (
	consentTerms consentID = iota
	consentPrivacy
	consentDisclaimer
	consentReturnPolicy
	consentDataProcessing
	consentMarketing
	numConsents
)

type consentSpec struct {
	title  string
	detail []string
}

var consentSpecs = [numConsents]consentSpec{
	consentTerms: {
		title: "Terms of Service Agreement *",
		detail: []string{
			"All consultations, courses, and products are non-refundable",
			"Clients cannot cancel bookings or purchased items",
			"Rescheduling is allowed only when the Astrologer cancels due to unavoidable reasons",
			"Services are for guidance purposes only",
		},
	},
	consentPrivacy: {
		title:  "Privacy Policy Agreement *",
		detail: []string{"I understand how my personal data will be collected, used, and protected"},
	},
	consentDisclaimer: {
		title: "Disclaimer Agreement *",
		detail: []string{
			"Astrology is for guidance and entertainment purposes only",
			"Services should not replace professional medical, legal, or financial advice",
			"Results and outcomes are not guaranteed",
		},
	},
	consentReturnPolicy: {
		title: "Return Policy Agreement *",
		detail: []string{
			"No returns or refunds for any products or services",
			"All sales are final upon purchase",
			"Hard copy horoscopes are non-returnable",
		},
	},
	consentDataProcessing: {
		title:  "Data Processing Consent *",
		detail: []string{"Processing of my birth details, contact information and consultation records to provide astrological services"},
	},
	consentMarketing: {
		title:  "Marketing Communications (Optional)",
		detail: []string{"Updates about new courses, special offers and astrological insights via email and SMS"},
	},
}

func (c consentID) get(d wizard.Draft) bool {
	switch c {
	case consentTerms:
		return d.Consents.Terms
	case consentPrivacy:
		return d.Consents.Privacy
	case consentDisclaimer:
		return d.Consents.Disclaimer
	case consentReturnPolicy:
		return d.Consents.ReturnPolicy
	case consentDataProcessing:
		return d.Consents.DataProcessing
	case consentMarketing:
		return d.Consents.Marketing
	}
	return false
}

func (c consentID) toggle(d *wizard.Draft) {
	switch c {
	case consentTerms:
		d.Consents.Terms = !d.Consents.Terms
	case consentPrivacy:
		d.Consents.Privacy = !d.Consents.Privacy
	case consentDisclaimer:
		d.Consents.Disclaimer = !d.Consents.Disclaimer
	case consentReturnPolicy:
		d.Consents.ReturnPolicy = !d.Consents.ReturnPolicy
	case consentDataProcessing:
		d.Consents.DataProcessing = !d.Consents.DataProcessing
	case consentMarketing:
		d.Consents.Marketing = !d.Consents.Marketing
	}
}

type buttonID int

const (
	buttonSendOTP buttonID = iota
	buttonVerifyOTP
	buttonResendOTP
	buttonBack
	buttonNext
	buttonCopyUUID
	buttonDashboard
	buttonLogin
)

type itemKind int

const (
	kindInput itemKind = iota
	kindSelect
	kindConsent
	kindButton
)

// item is one focusable element on the current screen.
type item struct {
	kind     itemKind
	field    fieldID
	selector selectorID
	consent  consentID
	button   buttonID
}

func inputItem(f fieldID) item     { return item{kind: kindInput, field: f} }
func selectItem(s selectorID) item { return item{kind: kindSelect, selector: s} }
func consentItem(c consentID) item { return item{kind: kindConsent, consent: c} }
func buttonItem(b buttonID) item   { return item{kind: kindButton, button: b} }

// formItems lists the focusable elements for a step in display order. Step
// two depends on where phone verification stands.
func formItems(step wizard.Step, otp wizard.OTPState) []item {
	switch step {
	case wizard.StepBasicInfo:
		return []item{
			inputItem(fieldFullName),
			inputItem(fieldUsername),
			selectItem(selectCountryCode),
			inputItem(fieldPhone),
			inputItem(fieldEmail),
			inputItem(fieldPassword),
			inputItem(fieldConfirmPassword),
			buttonItem(buttonNext),
		}
	case wizard.StepPhone:
		items := []item{selectItem(selectCountryCode), inputItem(fieldPhone)}
		switch otp {
		case wizard.OTPUnsent:
			items = append(items, buttonItem(buttonSendOTP))
		case wizard.OTPSent:
			items = append(items, inputItem(fieldOTP), buttonItem(buttonVerifyOTP), buttonItem(buttonResendOTP))
		}
		return append(items, inputItem(fieldWhatsApp), buttonItem(buttonBack), buttonItem(buttonNext))
	case wizard.StepBirthDetails:
		return []item{
			inputItem(fieldDateOfBirth),
			inputItem(fieldTimeOfBirth),
			inputItem(fieldPlaceOfBirth),
			selectItem(selectLanguage),
			buttonItem(buttonBack),
			buttonItem(buttonNext),
		}
	case wizard.StepAgreements:
		items := make([]item, 0, int(numConsents)+2)
		for c := range numConsents {
			items = append(items, consentItem(c))
		}
		return append(items, buttonItem(buttonBack), buttonItem(buttonNext))
	}
	return nil
}

func successItems() []item {
	return []item{buttonItem(buttonCopyUUID), buttonItem(buttonDashboard), buttonItem(buttonLogin)}
}
