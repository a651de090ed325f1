package email

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
)

type recordingSES struct {
	inputs []*sesv2.SendEmailInput
	err    error
}

func (r *recordingSES) SendEmail(_ context.Context, params *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	r.inputs = append(r.inputs, params)
	if r.err != nil {
		return nil, r.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESClientSendFrom(t *testing.T) {
	api := &recordingSES{}
	client := &SESClient{api: api, sender: "fixtures@league.example"}

	if err := client.Send(context.Background(), " secretary@league.example ", "Fixtures", "Round 1 is out"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if err := client.SendFrom(context.Background(), "ref@league.example", "Assignment", "You have a match", "refs@league.example"); err != nil {
		t.Fatalf("send from: %v", err)
	}

	if len(api.inputs) != 2 {
		t.Fatalf("expected 2 SES calls, got %d", len(api.inputs))
	}
	first := api.inputs[0]
	if aws.ToString(first.FromEmailAddress) != "fixtures@league.example" {
		t.Fatalf("expected default sender, got %q", aws.ToString(first.FromEmailAddress))
	}
	if first.Destination.ToAddresses[0] != "secretary@league.example" {
		t.Fatalf("expected trimmed recipient, got %q", first.Destination.ToAddresses[0])
	}
	if aws.ToString(first.Content.Simple.Body.Text.Charset) != charsetUTF8 {
		t.Fatal("expected UTF-8 body charset")
	}
	if aws.ToString(api.inputs[1].FromEmailAddress) != "refs@league.example" {
		t.Fatalf("expected explicit sender, got %q", aws.ToString(api.inputs[1].FromEmailAddress))
	}
}

func TestSESClientRejectsMissingAddresses(t *testing.T) {
	api := &recordingSES{}
	if err := (&SESClient{api: api, sender: "fixtures@league.example"}).Send(context.Background(), "  ", "s", "b"); !errors.Is(err, ErrNoRecipient) {
		t.Fatalf("expected ErrNoRecipient, got %v", err)
	}
	if err := (&SESClient{api: api}).Send(context.Background(), "a@league.example", "s", "b"); !errors.Is(err, ErrNoSender) {
		t.Fatalf("expected ErrNoSender, got %v", err)
	}
	if len(api.inputs) != 0 {
		t.Fatal("expected no SES calls")
	}
}

func TestSESClientWrapsAPIError(t *testing.T) {
	boom := errors.New("throttled")
	client := &SESClient{api: &recordingSES{err: boom}, sender: "fixtures@league.example"}
	if err := client.Send(context.Background(), "a@league.example", "s", "b"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped API error, got %v", err)
	}
}
