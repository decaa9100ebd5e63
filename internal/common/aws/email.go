package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// Email is a plain-text message.
type Email struct {
	From    string
	To      string
	Subject string
	Body    string
}

// SendEmail sends e through svc and returns the SES message id.
func SendEmail(ctx context.Context, svc SESService, e Email) (string, error) {
	if e.To == "" {
		return "", fmt.Errorf("send email: empty recipient")
	}
	out, err := svc.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{ToAddresses: []string{e.To}},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(e.Subject), Charset: aws.String("UTF-8")},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(e.Body), Charset: aws.String("UTF-8")},
			},
		},
		Source: aws.String(e.From),
	})
	if err != nil {
		return "", fmt.Errorf("send email to %s: %w", e.To, err)
	}
	return aws.ToString(out.MessageId), nil
}
