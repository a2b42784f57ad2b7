package auth

import (
	"context"
	"fmt"

	appconfig "course-platform/config"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

func SendVerificationEmail(ctx context.Context, to string, token string) error {
	link := fmt.Sprintf("%s/verify?token=%s", appconfig.APP_URL, token)
	body := fmt.Sprintf("Click the following link to verify your account:\n\n%s", link)
	return sendMail(ctx, to, "Verify Your Account", body)
}

func SendPasswordResetEmail(ctx context.Context, to string, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", appconfig.APP_URL, token)
	body := fmt.Sprintf("Click the following link to reset your password:\n\n%s", link)
	return sendMail(ctx, to, "Reset Your Password", body)
}

func sendMail(ctx context.Context, to, subject, body string) error {
	// No sender configured: log the link instead of failing (local dev)
	if appconfig.SES_FROM == "" {
		fmt.Printf("📨 [%s] to %s:\n%s\n", subject, to, body)
		return nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(appconfig.AWS_REGION))
	if err != nil {
		return err
	}
	client := ses.NewFromConfig(cfg)

	_, err = client.SendEmail(ctx, &ses.SendEmailInput{
		Source: &appconfig.SES_FROM,
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: &subject},
			Body: &types.Body{
				Text: &types.Content{Data: &body},
			},
		},
	})
	if err != nil {
		fmt.Println("❌ SES error:", err)
	}
	return err
}
