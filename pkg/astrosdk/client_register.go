package astrosdk

import "context"

// Register creates the customer account. The phone number must have been
// verified with VerifyOTP first.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var out RegisterResponse
	if err := c.postJSON(ctx, "/api/auth/register", req, &out); err != nil {
		return nil, err
	}
	if out.UserID() == "" {
		return nil, ErrMissingUserID
	}
	return &out, nil
}
