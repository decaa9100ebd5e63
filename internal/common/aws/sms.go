package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// SMSMaxLength is the single-segment limit for GSM-7 text.
const SMSMaxLength = 160

// SendSMS publishes message to phone as a transactional SMS and returns the SNS message id.
// Messages longer than SMSMaxLength are truncated.
func SendSMS(ctx context.Context, svc SNSService, phone, message string) (string, error) {
	if phone == "" {
		return "", fmt.Errorf("send sms: empty phone number")
	}
	if len(message) > SMSMaxLength {
		message = message[:SMSMaxLength]
	}
	out, err := svc.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(phone),
		Message:     aws.String(message),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"AWS.SNS.SMS.SMSType": {
				DataType:    aws.String("String"),
				StringValue: aws.String("Transactional"),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("send sms: %w", err)
	}
	return aws.ToString(out.MessageId), nil
}
