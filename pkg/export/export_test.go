package export

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/vango-dev/feather/internal/errors"
	"github.com/vango-dev/feather/pkg/render"
)

var quiet = WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

func staticPage(p, body string) Page {
	return Page{Path: p, Build: func(context.Context) (*render.Render, error) {
		return render.HTML(body), nil
	}}
}

type fakeS3 struct {
	mu      sync.Mutex
	objects map[string]string
	inputs  []*s3.PutObjectInput
	err     error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.objects == nil {
		f.objects = make(map[string]string)
	}
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = string(body)
	f.inputs = append(f.inputs, in)
	return &s3.PutObjectOutput{}, nil
}

func TestKeyFor(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/", "index.html"},
		{"/about", "about/index.html"},
		{"/about/", "about/index.html"},
		{"/docs/intro", "docs/intro/index.html"},
		{"/feed.xml", "feed.xml"},
		{"/v1.2/", "v1.2/index.html"},
	}
	for _, tt := range tests {
		got, err := KeyFor(tt.path)
		if err != nil || got != tt.want {
			t.Errorf("KeyFor(%q) = %q, %v, want %q", tt.path, got, err, tt.want)
		}
	}

	for _, bad := range []string{"", "about", "/todos/{id}", "/static/*", "/../etc", "/a/./b", `/a\b`} {
		if _, err := KeyFor(bad); !errors.Is(err, ErrInvalidPath) {
			t.Errorf("KeyFor(%q) error = %v, want ErrInvalidPath", bad, err)
		}
	}
}

func TestExport_Dir(t *testing.T) {
	root := t.TempDir()
	pages := []Page{
		staticPage("/", "<h1>home</h1>"),
		staticPage("/about", "<h1>about</h1>"),
	}

	res, err := Export(context.Background(), NewDirSink(root), pages, quiet)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(res.Locations) != 2 || res.Bytes != int64(len("<h1>home</h1>")+len("<h1>about</h1>")) {
		t.Errorf("Result = %+v", res)
	}

	for key, want := range map[string]string{
		"index.html":       "<h1>home</h1>",
		"about/index.html": "<h1>about</h1>",
	} {
		got, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(key)))
		if err != nil {
			t.Fatalf("read %s: %v", key, err)
		}
		if string(got) != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}
}

func TestExport_S3(t *testing.T) {
	fake := &fakeS3{}
	sink := NewS3Sink(fake, "site", "/v1/")

	res, err := Export(context.Background(), sink, []Page{staticPage("/", "home")}, quiet)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if got := fake.objects["site/v1/index.html"]; got != "home" {
		t.Errorf("object = %q, objects = %v", got, fake.objects)
	}
	if ct := aws.ToString(fake.inputs[0].ContentType); ct != "text/html; charset=utf-8" {
		t.Errorf("ContentType = %q", ct)
	}
	if res.Locations[0] != "s3://site/v1/index.html" {
		t.Errorf("Location = %q", res.Locations[0])
	}
}

func TestExport_Errors(t *testing.T) {
	ctx := context.Background()

	if _, err := Export(ctx, NewDirSink(t.TempDir()), nil, quiet); !errors.Is(err, ErrNoPages) {
		t.Errorf("no pages error = %v, want ErrNoPages", err)
	}

	boom := stderrors.New("boom")
	failing := Page{Path: "/x", Build: func(context.Context) (*render.Render, error) { return nil, boom }}
	res, err := Export(ctx, NewDirSink(t.TempDir()), []Page{staticPage("/", "ok"), failing}, quiet)
	if !errors.Is(err, boom) {
		t.Errorf("build error = %v, want boom", err)
	}
	if len(res.Locations) != 1 {
		t.Errorf("pages written before the failure should be reported, got %v", res.Locations)
	}

	denied := stderrors.New("access denied")
	_, err = Export(ctx, NewS3Sink(&fakeS3{err: denied}, "b", ""), []Page{staticPage("/", "x")}, quiet)
	var fe *errors.FeatherError
	if !errors.As(err, &fe) || fe.Code != "E101" || !errors.Is(err, denied) {
		t.Errorf("sink error = %v, want E101 wrapping the cause", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := Export(cancelled, NewDirSink(t.TempDir()), []Page{staticPage("/", "x")}, quiet); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled export error = %v", err)
	}
}

func TestNewS3Client(t *testing.T) {
	client := NewS3Client(S3Config{
		Region:          "eu-west-1",
		Endpoint:        "http://localhost:9000",
		PathStyle:       true,
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
	})
	opts := client.Options()
	if opts.Region != "eu-west-1" || !opts.UsePathStyle || aws.ToString(opts.BaseEndpoint) != "http://localhost:9000" {
		t.Errorf("Options() = region %q pathStyle %v endpoint %q", opts.Region, opts.UsePathStyle, aws.ToString(opts.BaseEndpoint))
	}
	creds, err := opts.Credentials.Retrieve(context.Background())
	if err != nil || creds.AccessKeyID != "key" || creds.SecretAccessKey != "secret" {
		t.Errorf("Credentials = %+v, %v", creds, err)
	}
}
