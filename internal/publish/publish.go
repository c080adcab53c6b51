// Package publish uploads static HTML snapshots of rendered widgets to S3
// or an S3 compatible store.
package publish

import (
	"bytes"
	"context"
	stderrors "errors"
	"html/template"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/widgetkit/internal/config"
	"github.com/vango-dev/widgetkit/internal/errors"
	"github.com/vango-dev/widgetkit/pkg/memdom"
)

// ObjectPutter is the part of *s3.Client the publisher uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// NewClient creates an S3 client for cfg. Credentials come from
// AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN.
func NewClient(cfg config.PublishConfig) *s3.Client {
	opts := s3.Options{
		Region:       cfg.Region,
		Credentials:  aws.NewCredentialsCache(envCredentials()),
		UsePathStyle: cfg.PathStyle,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return s3.New(opts)
}

func envCredentials() aws.CredentialsProvider {
	return aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
		creds := aws.Credentials{
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
			Source:          "Environment",
		}
		if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
			return aws.Credentials{}, stderrors.New("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY are not set")
		}
		return creds, nil
	})
}

// Publisher writes snapshots under a bucket prefix.
type Publisher struct {
	client ObjectPutter
	bucket string
	prefix string
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) { p.logger = logger }
}

// New creates a publisher writing to bucket under prefix.
func New(client ObjectPutter, bucket, prefix string, opts ...Option) *Publisher {
	p := &Publisher{
		client: client,
		bucket: bucket,
		prefix: prefix,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// Key returns the object key for name.
func (p *Publisher) Key(name string) string {
	if p.prefix == "" {
		return name
	}
	return path.Join(p.prefix, name)
}

// Publish uploads an HTML document as name and returns its key.
func (p *Publisher) Publish(ctx context.Context, name string, html []byte) (string, error) {
	if p.bucket == "" {
		return "", errors.New("W301").
			WithDetail("no bucket configured").
			WithSuggestion("Set publish.bucket in widgetkit.json or pass --bucket.")
	}
	key := p.Key(name)

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(p.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(html),
		ContentType:  aws.String("text/html; charset=utf-8"),
		CacheControl: aws.String("max-age=60"),
		Metadata: map[string]string{
			"generator":    "widgetkit",
			"published-at": p.now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", errors.New("W301").WithDetailf("s3://%s/%s", p.bucket, key).Wrap(err)
	}

	p.logger.Info("published snapshot",
		slog.String("bucket", p.bucket),
		slog.String("key", key),
		slog.Int("bytes", len(html)),
	)
	return key, nil
}

// PublishDocument renders the children of doc's root as a standalone page
// and uploads it. doc must not be mutated concurrently.
func (p *Publisher) PublishDocument(ctx context.Context, doc *memdom.Document, name, title string) (string, error) {
	html, err := Page(title, doc.InnerHTML(doc.Root()))
	if err != nil {
		return "", errors.New("W301").Wrap(err)
	}
	return p.Publish(ctx, name, html)
}

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
</head>
<body>{{.Body}}</body>
</html>
`))

// Page wraps body, which must already be serialized HTML, in a document.
func Page(title, body string) ([]byte, error) {
	var buf bytes.Buffer
	err := page.Execute(&buf, struct {
		Title string
		Body  template.HTML
	}{strings.TrimSpace(title), template.HTML(body)})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
