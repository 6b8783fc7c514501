/*
Package astrosdk is the client for the Jai Guru Astro Remedy registration API.

# Overview

Registering a customer takes three calls against the API, all unauthenticated:

  - SendOTP asks the API to text a one-time code to the customer's phone
  - VerifyOTP confirms the code the customer typed in
  - Register creates the account and returns a session token

Register is refused unless the same phone number was verified first.

	client := astrosdk.NewSDKClient("https://api.jaiguruastroremedy.com")

	_, err := client.SendOTP(ctx, astrosdk.SendOTPRequest{
		CountryCode: "+91",
		PhoneNumber: "9876543210",
		Purpose:     astrosdk.PurposeRegistration,
	})

	_, err = client.VerifyOTP(ctx, astrosdk.VerifyOTPRequest{
		CountryCode: "+91",
		PhoneNumber: "9876543210",
		OTP:         "123456",
	})

	resp, err := client.Register(ctx, astrosdk.RegisterRequest{...})
	fmt.Println(resp.Token, resp.UserID())

# Errors

Any response other than the documented success status becomes an *APIError.
Its Message is meant for the customer and is shown as-is by the front end:

	var apiErr *astrosdk.APIError
	if errors.As(err, &apiErr) {
		fmt.Println(apiErr.StatusCode, apiErr.Message)
	}

The API reports errors as {"error": code, "message": text}. Bodies using
{"error_description": text} instead are understood too, and a body that is
not JSON falls back to the HTTP status text.

# Health

GetLiveness and GetReadiness hit /livez and /readyz. The terminal client calls
GetReadiness at start-up so a wrong ASTRO_API_URL is reported before the
customer fills in the form.
*/
package astrosdk
