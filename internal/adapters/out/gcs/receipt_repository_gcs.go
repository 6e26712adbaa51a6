// internal/adapters/out/gcs/receipt_repository_gcs.go
package gcs

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iamcredentials/v1"
)

// ReceiptRepositoryGCS implements receipt.Store on a private bucket.
//
// Layout (single bucket):
// - bucket: <store>-receipts
// - objectPath: receipts/{userId}/{ts}.{ext}           (checkout upload)
//               receipts/{userId}/{orderId}-{ts}.{ext} (later upload)
//
// The bucket stays private; reads go through short-lived V4 signed URLs.
type ReceiptRepositoryGCS struct {
	Client *storage.Client
	Bucket string
}

func NewReceiptRepositoryGCS(client *storage.Client, bucket string) *ReceiptRepositoryGCS {
	return &ReceiptRepositoryGCS{
		Client: client,
		Bucket: strings.TrimSpace(bucket),
	}
}

// Upload writes data under objectPath and returns the stored path.
func (r *ReceiptRepositoryGCS) Upload(ctx context.Context, objectPath, contentType string, data []byte) (string, error) {
	if r == nil || r.Client == nil {
		return "", errors.New("receipt_repository_gcs: storage client is nil")
	}
	b := strings.TrimSpace(r.Bucket)
	if b == "" {
		return "", errors.New("receipt_repository_gcs: bucket is empty")
	}
	obj := strings.TrimSpace(objectPath)
	if obj == "" {
		return "", errors.New("receipt_repository_gcs: objectPath is empty")
	}

	w := r.Client.Bucket(b).Object(obj).NewWriter(ctx)
	if ct := strings.TrimSpace(contentType); ct != "" {
		w.ContentType = ct
	}
	// Safety: avoid writer hanging forever.
	w.ChunkSize = 0
	w.Metadata = map[string]string{
		"uploadedAt": time.Now().UTC().Format(time.RFC3339),
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return obj, nil
}

// IssueViewURL issues a V4 signed URL for viewing an object via HTTP GET.
//
// NOTE:
//   - Uses IAMCredentials SignBlob (no JSON private key required).
//   - The signer service account email comes from env.
//     Recommended: GCS_SIGNER_EMAIL (or GOOGLE_SERVICE_ACCOUNT_EMAIL / SERVICE_ACCOUNT_EMAIL).
//
// Required IAM:
//   - The runtime identity must be allowed to call iamcredentials.signBlob for
//     that SA (typically the same SA in Cloud Run).
func (r *ReceiptRepositoryGCS) IssueViewURL(ctx context.Context, objectPath string, expiresIn time.Duration) (string, error) {
	if r == nil {
		return "", errors.New("receipt_repository_gcs: repo is nil")
	}
	b := strings.TrimSpace(r.Bucket)
	if b == "" {
		return "", errors.New("receipt_repository_gcs: bucket is empty")
	}
	obj := strings.TrimSpace(objectPath)
	if obj == "" {
		return "", errors.New("receipt_repository_gcs: objectPath is empty")
	}

	// default / clamp
	if expiresIn <= 0 {
		expiresIn = 15 * time.Minute
	}
	if expiresIn > time.Hour {
		expiresIn = time.Hour
	}

	accessID := strings.TrimSpace(firstNonEmptyEnv(
		"GCS_SIGNER_EMAIL",
		"GOOGLE_SERVICE_ACCOUNT_EMAIL",
		"SERVICE_ACCOUNT_EMAIL",
	))
	if accessID == "" {
		return "", errors.New("receipt_repository_gcs: signer email not configured (set GCS_SIGNER_EMAIL)")
	}

	svc, err := iamcredentials.NewService(ctx)
	if err != nil {
		return "", fmt.Errorf("receipt_repository_gcs: iamcredentials init failed: %w", err)
	}

	signBytes := func(bts []byte) ([]byte, error) {
		name := fmt.Sprintf("projects/-/serviceAccounts/%s", accessID)
		req := &iamcredentials.SignBlobRequest{
			Payload: base64.StdEncoding.EncodeToString(bts),
		}
		resp, err := svc.Projects.ServiceAccounts.SignBlob(name, req).Do()
		if err != nil {
			return nil, err
		}
		sig, err := base64.StdEncoding.DecodeString(resp.SignedBlob)
		if err != nil {
			return nil, err
		}
		return sig, nil
	}

	opts := &storage.SignedURLOptions{
		Scheme:         storage.SigningSchemeV4,
		Method:         "GET",
		GoogleAccessID: accessID,
		SignBytes:      signBytes,
		Expires:        time.Now().UTC().Add(expiresIn),
	}

	u, err := storage.SignedURL(b, obj, opts)
	if err != nil {
		return "", err
	}
	return u, nil
}

func firstNonEmptyEnv(keys ...string) string {
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}
