package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/n8hotnews-a11y/Smart-Frigde/models"
)

var sesClient *ses.Client

func InitSES() {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		log.Fatalf("AWS config load failed: %v", err)
	}
	sesClient = ses.NewFromConfig(cfg)
}

// generic SES sender
func sendEmail(to string, subject string, body string) error {
	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(body),
				},
			},
		},
		Source: aws.String(os.Getenv("SES_EMAIL")),
	}

	_, err := sesClient.SendEmail(context.TODO(), input)
	if err != nil {
		log.Printf("SES send error: %v", err)
		return fmt.Errorf("email send failed: %v", err)
	}
	return nil
}

// SendExpiryDigest emails the list of items about to expire.
func SendExpiryDigest(to string, alerts []models.Alert) error {
	if len(alerts) == 0 {
		return nil
	}

	subject := "Bếp AI: thực phẩm sắp hết hạn"
	var sb strings.Builder
	sb.WriteString("Các thực phẩm sau trong kho của bạn sắp hết hạn:\n\n")
	for _, a := range alerts {
		sb.WriteString(fmt.Sprintf("- %s\n", a.Message))
	}
	sb.WriteString("\nHãy dùng chúng sớm hoặc xem gợi ý món ăn trong ứng dụng.")

	return sendEmail(to, subject, sb.String())
}
