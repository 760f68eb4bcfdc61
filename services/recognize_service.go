package services

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// RecognizeService labels a food photo so the add-item form can prefill the
// name. Best-effort helper; the user always gets to edit the result.
type RecognizeService struct {
	client *rekognition.Client
}

func NewRecognizeService() (*RecognizeService, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, err
	}
	return &RecognizeService{client: rekognition.NewFromConfig(cfg)}, nil
}

// Labels returns the top labels for a base64-encoded image.
func (r *RecognizeService) Labels(base64Img string) ([]string, error) {
	idx := strings.Index(base64Img, ",")
	if idx < 0 || !strings.HasPrefix(base64Img, "data:image") {
		return nil, errors.New("invalid data URI")
	}
	data, err := base64.StdEncoding.DecodeString(base64Img[idx+1:])
	if err != nil {
		return nil, err
	}

	out, err := r.client.DetectLabels(context.TODO(), &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: data},
		MaxLabels:     aws.Int32(5),
		MinConfidence: aws.Float32(75),
	})
	if err != nil {
		return nil, err
	}

	var labels []string
	for _, l := range out.Labels {
		labels = append(labels, *l.Name)
	}
	return labels, nil
}

// SuggestName picks the best label as the item-name suggestion.
func (r *RecognizeService) SuggestName(base64Img string) (string, []string, error) {
	labels, err := r.Labels(base64Img)
	if err != nil {
		return "", nil, err
	}
	if len(labels) == 0 {
		return "", nil, errors.New("no labels detected")
	}
	return labels[0], labels, nil
}
