package resolver

import (
	"context"
)

func (r *RootResolver) GetLogInURL(ctx context.Context, args struct{ Service string }) (string, error) {
	return r.Identity.GenerateLogInURL(ctx, args.Service)
}

func (r *RootResolver) GetLineNotifyURL(ctx context.Context, args struct{ AccessToken string }) (string, error) {
	userID, err := r.auth(ctx, args.AccessToken)
	if err != nil {
		return "", err
	}
	return r.Identity.NotifyURLForUser(ctx, userID)
}

func (r *RootResolver) RegisterSignUpData(ctx context.Context, args struct {
	SendEmailToken string
	DisplayName    string
	Image          *string
	University     UniversityInput
	Email          string
}) (bool, error) {
	university, err := args.University.toModel()
	if err != nil {
		return false, err
	}
	image, err := parseOptionalImage(args.Image)
	if err != nil {
		return false, err
	}
	if err := r.Identity.RegisterSignUpData(ctx, args.SendEmailToken, args.DisplayName, image, university, args.Email); err != nil {
		return false, err
	}
	return true, nil
}
