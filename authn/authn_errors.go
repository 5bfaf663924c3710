package authn

import (
	"net/http"

	"github.com/mindmate-app/mindmate-client/httpclient"
	"github.com/mindmate-app/mindmate-client/internal/errors"
)

// Backend detail strings the classification boundary matches on. These are
// the literal messages the MindMate backend reports.
const (
	detailEmailUnverified = "Please verify your email first"
	detailEmailRegistered = "Email already registered"
)

// classifyLoginError translates a raw login failure onto the closed error
// taxonomy. This is the only place login response payloads are inspected.
func classifyLoginError(err error) error {
	if httpclient.IsStatus(err, http.StatusForbidden) && httpclient.Detail(err) == detailEmailUnverified {
		return errors.Wrapf(errors.ErrEmailUnverified, "login rejected")
	}
	if httpclient.IsStatus(err, http.StatusUnauthorized) {
		return errors.Wrapf(errors.ErrInvalidCredentials, "login rejected")
	}
	return err
}

func classifySignupError(err error) error {
	if httpclient.IsStatus(err, http.StatusBadRequest) && httpclient.Detail(err) == detailEmailRegistered {
		return errors.Wrapf(errors.ErrEmailAlreadyRegistered, "signup rejected")
	}
	return errors.Wrapf(errors.ErrRegistrationFailed, "signup failed")
}
