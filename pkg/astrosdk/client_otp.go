package astrosdk

import "context"

// SendOTP asks the API to text a verification code to the phone number.
// An empty Purpose is sent as PurposeRegistration.
func (c *SDKClient) SendOTP(ctx context.Context, req SendOTPRequest) (*OTPResponse, error) {
	if req.Purpose == "" {
		req.Purpose = PurposeRegistration
	}

	var out OTPResponse
	if err := c.postJSON(ctx, "/api/auth/send-otp", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyOTP checks a code previously sent to the phone number. The API
// treats an empty Purpose as PurposeRegistration.
func (c *SDKClient) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*OTPResponse, error) {
	var out OTPResponse
	if err := c.postJSON(ctx, "/api/auth/verify-otp", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
