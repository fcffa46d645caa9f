package api

import (
	"context"
	"net/http"
)

type otpRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type otpConfirm struct {
	Email    string `json:"email" validate:"required,email"`
	Passcode string `json:"passcode" validate:"required"`
}

type sessionResponse struct {
	Token string `json:"token"`
}

// RequestLoginCode asks the API to mail a one-time passcode to the researcher.
func (c *Client) RequestLoginCode(ctx context.Context, email string) error {
	in := otpRequest{Email: email}
	if err := validate.Struct(in); err != nil {
		return err
	}
	c.log.Info("requesting login code", "email", email)
	return c.do(ctx, http.MethodPost, "/auth/otp/request", in, nil)
}

// ConfirmLoginCode exchanges the mailed passcode for a session token.
func (c *Client) ConfirmLoginCode(ctx context.Context, email, passcode string) (Credentials, error) {
	in := otpConfirm{Email: email, Passcode: passcode}
	if err := validate.Struct(in); err != nil {
		return Credentials{}, err
	}
	var out sessionResponse
	if err := c.do(ctx, http.MethodPost, "/auth/otp/confirm", in, &out); err != nil {
		return Credentials{}, err
	}
	creds := Credentials{Token: out.Token}
	c.creds = creds
	return creds, nil
}
