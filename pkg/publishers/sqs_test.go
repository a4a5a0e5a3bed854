package publishers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/samvad-hq/catalog-consumer/internal/domain"
)

type fakeSQSClient struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQSClient) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("msg-123")}, nil
}

func TestSQSPublisherSendsAttributes(t *testing.T) {
	client := &fakeSQSClient{}
	pub := &sqsPublisher{
		id:       "queue",
		queueURL: "https://example.com/queue",
		client:   client,
		log:      noopLogger{},
	}

	evt := NewItemCreatedEvent("processing", domain.CreatedItem{
		Name:    "Widget",
		SKU:     "W-001",
		Country: domain.Country{Code: "BR", Name: "Brazil"},
	})
	if err := pub.Publish(context.Background(), evt); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if client.input == nil {
		t.Fatalf("client was not called")
	}
	if got := aws.ToString(client.input.QueueUrl); got != "https://example.com/queue" {
		t.Fatalf("QueueUrl = %s", got)
	}
	attr, ok := client.input.MessageAttributes["sku"]
	if !ok || aws.ToString(attr.StringValue) != "W-001" || aws.ToString(attr.DataType) != "String" {
		t.Fatalf("sku attribute missing or wrong: %#v", attr)
	}
	if cc := client.input.MessageAttributes["country_code"]; aws.ToString(cc.StringValue) != "BR" {
		t.Fatalf("country_code should fall back to resolved country, got %#v", cc)
	}
	if !strings.Contains(aws.ToString(client.input.MessageBody), `"sku":"W-001"`) {
		t.Fatalf("MessageBody missing sku: %s", aws.ToString(client.input.MessageBody))
	}
}

func TestSQSPublisherSendError(t *testing.T) {
	pub := &sqsPublisher{
		id:       "queue",
		queueURL: "https://example.com/queue",
		client:   &fakeSQSClient{err: errors.New("boom")},
		log:      noopLogger{},
	}

	if err := pub.Publish(context.Background(), Event{Item: domain.CreatedItem{SKU: "W-001"}}); err == nil {
		t.Fatalf("expected error from Publish")
	}
}
