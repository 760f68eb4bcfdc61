package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
)

// Device is one registered push target. The registry is in-memory: a device
// re-registers on app start, matching the no-persistence scope.
type Device struct {
	Platform    string    `json:"platform"` // "android" | "ios"
	TokenHash   string    `json:"-"`
	EndpointARN string    `json:"-"`
	Enabled     bool      `json:"enabled"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type PushService struct {
	sns            *awssns.Client
	fcmPlatformArn string

	mu      sync.Mutex
	devices map[string]*Device // keyed by token hash
}

func NewPushService() (*PushService, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "ap-south-1"
	}
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &PushService{
		sns:            awssns.NewFromConfig(cfg),
		fcmPlatformArn: os.Getenv("SNS_FCM_ARN"),
		devices:        make(map[string]*Device),
	}, nil
}

func (p *PushService) tokenHash(tok string) string {
	h := sha256.Sum256([]byte(tok))
	return hex.EncodeToString(h[:])
}

func (p *PushService) platformArn(platform string) (string, error) {
	switch strings.ToLower(platform) {
	case "android", "ios":
		if p.fcmPlatformArn == "" {
			return "", errors.New("SNS_FCM_ARN not set")
		}
		return p.fcmPlatformArn, nil
	default:
		return "", errors.New("unknown platform")
	}
}

func (p *PushService) RegisterDevice(platform, token string) (*Device, error) {
	appArn, err := p.platformArn(platform)
	if err != nil {
		return nil, err
	}

	out, err := p.sns.CreatePlatformEndpoint(context.TODO(), &awssns.CreatePlatformEndpointInput{
		PlatformApplicationArn: aws.String(appArn),
		Token:                  aws.String(token),
	})
	if err != nil {
		return nil, err
	}

	dev := &Device{
		Platform:    strings.ToLower(platform),
		TokenHash:   p.tokenHash(token),
		EndpointARN: aws.ToString(out.EndpointArn),
		Enabled:     true,
		UpdatedAt:   time.Now(),
	}

	p.mu.Lock()
	p.devices[dev.TokenHash] = dev
	p.mu.Unlock()
	return dev, nil
}

// SetEnabled toggles push delivery for every registered device.
func (p *PushService) SetEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, d := range p.devices {
		d.Enabled = enabled
		d.UpdatedAt = time.Now()
	}
}

// PushAll sends a notification to every enabled device.
func (p *PushService) PushAll(title, body string, data map[string]string) {
	p.mu.Lock()
	endpoints := make([]string, 0, len(p.devices))
	for _, d := range p.devices {
		if d.Enabled {
			endpoints = append(endpoints, d.EndpointARN)
		}
	}
	p.mu.Unlock()

	if len(endpoints) == 0 {
		return
	}

	msg := map[string]any{
		"default": body,
		"GCM": map[string]any{
			"notification": map[string]string{
				"title": title,
				"body":  body,
			},
			"data": data,
		},
	}

	raw, _ := json.Marshal(msg)
	for _, arn := range endpoints {
		_, _ = p.sns.Publish(context.TODO(), &awssns.PublishInput{
			MessageStructure: aws.String("json"),
			Message:          aws.String(string(raw)),
			TargetArn:        aws.String(arn),
		})
	}
}
