package wizard

import "github.com/jaiguruastro/astroremedy/pkg/astrosdk"

// BuildRegisterRequest flattens the draft into the registration payload.
// Optional fields go out as empty strings and the WhatsApp number falls
// back to the phone number.
func BuildRegisterRequest(d Draft) astrosdk.RegisterRequest {
	whatsapp := d.WhatsAppNumber
	if whatsapp == "" {
		whatsapp = d.PhoneNumber
	}

	return astrosdk.RegisterRequest{
		Step: astrosdk.RegisterStep,
		Agreements: astrosdk.Agreements{
			Terms:          d.Consents.Terms,
			Privacy:        d.Consents.Privacy,
			Disclaimer:     d.Consents.Disclaimer,
			ReturnPolicy:   d.Consents.ReturnPolicy,
			DataProcessing: d.Consents.DataProcessing,
			Marketing:      d.Consents.Marketing,
		},
		Username:          d.Username,
		Email:             d.Email,
		Password:          d.Password,
		FullName:          d.FullName,
		PhoneNumber:       d.PhoneNumber,
		CountryCode:       d.CountryCode,
		WhatsAppNumber:    whatsapp,
		DateOfBirth:       d.DateOfBirth,
		TimeOfBirth:       d.TimeOfBirth,
		PlaceOfBirth:      d.PlaceOfBirth,
		PreferredLanguage: d.PreferredLanguage,
	}
}

func sendOTPRequest(d Draft) astrosdk.SendOTPRequest {
	return astrosdk.SendOTPRequest{
		CountryCode: d.CountryCode,
		PhoneNumber: d.PhoneNumber,
		Purpose:     astrosdk.PurposeRegistration,
	}
}

func verifyOTPRequest(d Draft) astrosdk.VerifyOTPRequest {
	return astrosdk.VerifyOTPRequest{
		CountryCode: d.CountryCode,
		PhoneNumber: d.PhoneNumber,
		OTP:         d.OTP,
	}
}
