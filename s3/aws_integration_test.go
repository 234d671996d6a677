//go:build integration
// +build integration

package s3

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/0chain/bucketxfer/model"
)

func integrationConfig() model.EndpointConfig {
	return model.EndpointConfig{
		Name:        "source",
		EndpointURL: os.Getenv("DO_SPACES_ENDPOINT"),
		AccessKey:   os.Getenv("DO_SPACES_ACCESS_KEY_ID"),
		SecretKey:   os.Getenv("DO_SPACES_SECRET_ACCESS_KEY"),
		Region:      os.Getenv("DO_SPACES_REGION"),
		BucketName:  os.Getenv("DO_SPACES_BUCKET_NAME"),
	}
}

func TestAwsClient_ListPageIntegration(t *testing.T) {
	client, err := GetAwsClient(context.Background(), integrationConfig())
	if err != nil {
		t.Fatal(err)
	}

	page, err := client.ListPage(context.Background(), "", 10)
	if err != nil {
		t.Fatalf("got error while listing, err = %+v", err)
	}
	for _, obj := range page.Objects {
		log.Println(obj.Key, obj.Size)
	}
}

func TestAwsClient_ExistsIntegration(t *testing.T) {
	client, err := GetAwsClient(context.Background(), integrationConfig())
	if err != nil {
		t.Fatal(err)
	}

	exists, err := client.Exists(context.Background(), "definitely/not/here")
	if err != nil {
		t.Fatalf("existence check failed, err = %+v", err)
	}
	if exists {
		t.Fatal("expected missing key")
	}
}
