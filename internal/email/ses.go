package email

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/rs/zerolog/log"
)

const charsetUTF8 = "UTF-8"

var (
	ErrNoRecipient = errors.New("email recipient is required")
	ErrNoSender    = errors.New("email sender is required")
)

// sesAPI is the slice of the SESv2 client we call.
type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESClient sends plain-text mail through SESv2.
type SESClient struct {
	api    sesAPI
	sender string
}

// NewSESClient builds a client from static credentials. sender is the
// default From address.
func NewSESClient(accessKeyID, secretAccessKey, region, sender string) (*SESClient, error) {
	if accessKeyID == "" || secretAccessKey == "" || region == "" {
		return nil, errors.New("ses credentials and region are required")
	}
	if strings.TrimSpace(sender) == "" {
		return nil, ErrNoSender
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(
		context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &SESClient{api: sesv2.NewFromConfig(awsCfg), sender: sender}, nil
}

func (c *SESClient) Send(ctx context.Context, recipient, subject, body string) error {
	return c.SendFrom(ctx, recipient, subject, body, "")
}

// SendFrom sends from sender, or from the default address when sender is blank.
func (c *SESClient) SendFrom(ctx context.Context, recipient, subject, body, sender string) error {
	if c == nil || c.api == nil {
		return errors.New("ses client is not initialized")
	}
	input, err := sendEmailInput(recipient, firstNonBlank(sender, c.sender), Message{Subject: subject, Body: body})
	if err != nil {
		return err
	}

	if _, err := c.api.SendEmail(ctx, input); err != nil {
		log.Ctx(ctx).Error().
			Err(err).
			Str("recipient", input.Destination.ToAddresses[0]).
			Str("subject", subject).
			Msg("SES rejected email")
		return fmt.Errorf("send ses email: %w", err)
	}
	return nil
}

func sendEmailInput(recipient, from string, msg Message) (*sesv2.SendEmailInput, error) {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return nil, ErrNoRecipient
	}
	if from == "" {
		return nil, ErrNoSender
	}
	return &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination:      &types.Destination{ToAddresses: []string{recipient}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String(charsetUTF8)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(msg.Body), Charset: aws.String(charsetUTF8)},
				},
			},
		},
	}, nil
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
