package services

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

type ModerationService struct {
	client *rekognition.Client
}

func NewModerationService() (*ModerationService, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, err
	}
	return &ModerationService{client: rekognition.NewFromConfig(cfg)}, nil
}

// FlaggedLabels runs the image through Rekognition's moderation model
// and returns the names of any labels above the confidence floor. An
// empty slice means the image is fine to publish.
func (m *ModerationService) FlaggedLabels(imageData []byte) ([]string, error) {
	out, err := m.client.DetectModerationLabels(context.TODO(), &rekognition.DetectModerationLabelsInput{
		Image:         &types.Image{Bytes: imageData},
		MinConfidence: aws.Float32(80),
	})
	if err != nil {
		return nil, err
	}

	var labels []string
	for _, l := range out.ModerationLabels {
		labels = append(labels, aws.ToString(l.Name))
	}
	return labels, nil
}
