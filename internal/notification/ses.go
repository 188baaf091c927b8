package notification

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const charsetUTF8 = "UTF-8"

// SESConfig holds configuration for AWS SES.
type SESConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// sesAPI is the subset of the SES client used here.
type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type sesSender struct {
	client sesAPI
	source string
}

// NewSESSender sends through AWS SES using static credentials.
func NewSESSender(cfg SESConfig, fromAddress, fromName string) Sender {
	awsCfg := aws.Config{
		Region: cfg.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	}

	return newSESSender(ses.NewFromConfig(awsCfg), fromAddress, fromName)
}

func newSESSender(client sesAPI, fromAddress, fromName string) *sesSender {
	source := fromAddress
	if fromName != "" {
		source = fmt.Sprintf("%s <%s>", fromName, fromAddress)
	}
	return &sesSender{client: client, source: source}
}

func (s *sesSender) Send(ctx context.Context, recipient string, content RenderedContent) (string, error) {
	input := &ses.SendEmailInput{
		Source: aws.String(s.source),
		Destination: &types.Destination{
			ToAddresses: []string{recipient},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(content.Subject),
				Charset: aws.String(charsetUTF8),
			},
			Body: &types.Body{},
		},
	}

	if content.HTML != "" {
		input.Message.Body.Html = &types.Content{
			Data:    aws.String(content.HTML),
			Charset: aws.String(charsetUTF8),
		}
	}

	if content.Text != "" {
		input.Message.Body.Text = &types.Content{
			Data:    aws.String(content.Text),
			Charset: aws.String(charsetUTF8),
		}
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return "", fmt.Errorf("send email via SES: %w", err)
	}

	return aws.ToString(result.MessageId), nil
}
