package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/blogcore/internal/dbx/dbxtest"
	"github.com/dmitrijs2005/blogcore/internal/server"
	"github.com/dmitrijs2005/blogcore/internal/server/config"
	"github.com/dmitrijs2005/blogcore/internal/server/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sqliteArgs = []string{
	"--db-driver", "sqlite",
	"--dsn", dbxtest.SQLiteDSN,
	"--max-open-conns", "1",
	"--max-idle-conns", "1",
	"--bcrypt-cost", "4",
	"--log-level", "error",
}

func execute(t *testing.T, in string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd(strings.NewReader(in), &out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestMigrateCmd(t *testing.T) {
	var migrated bool
	orig := newApp
	t.Cleanup(func() { newApp = orig })
	newApp = func(ctx context.Context, c *config.Config, w io.Writer) (*server.App, error) {
		migrated = c.MigrateOnStart
		return orig(ctx, c, w)
	}

	out, err := execute(t, "", append([]string{"migrate"}, sqliteArgs...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Migrations applied")
	assert.False(t, migrated)
}

func TestConsoleCmd(t *testing.T) {
	stubTerminal(t, false, nil, nil)

	in := script(registerAda, "login", "adal", "Secret123", "users", "exit")
	out, err := execute(t, in, append([]string{"console"}, sqliteArgs...)...)
	require.NoError(t, err)

	assert.Contains(t, out, "Blog console")
	assert.Contains(t, out, "User added successfully")
	assert.Contains(t, out, "Logged in as adal")
	assert.Contains(t, out, "Bye!")
}

func TestCmd_ConfigErrors(t *testing.T) {
	_, err := execute(t, "", "console", "--db-driver", "oracle")
	assert.ErrorContains(t, err, "unsupported database driver")

	_, err = execute(t, "", "migrate", "--log-backend", "logrus", "--db-driver", "sqlite", "--dsn", dbxtest.SQLiteDSN)
	assert.ErrorContains(t, err, "unknown log backend")

	orig := newApp
	t.Cleanup(func() { newApp = orig })
	newApp = func(ctx context.Context, c *config.Config, w io.Writer) (*server.App, error) {
		return nil, errors.New("db init error: refused")
	}
	_, err = execute(t, "", append([]string{"console"}, sqliteArgs...)...)
	assert.ErrorContains(t, err, "refused")
}

type fakePresigner struct {
	kind media.Kind
	err  error
}

func (f *fakePresigner) PresignUpload(ctx context.Context, kind media.Kind) (*media.Upload, error) {
	f.kind = kind
	if f.err != nil {
		return nil, f.err
	}
	return &media.Upload{
		Key:       string(kind) + "/2025/04/07/abc",
		UploadURL: "https://signed/put",
		PublicURL: "https://cdn/" + string(kind) + "/2025/04/07/abc",
		ExpiresAt: time.Date(2025, 4, 7, 12, 15, 0, 0, time.UTC),
	}, nil
}

func TestPresignCmd(t *testing.T) {
	fp := &fakePresigner{}
	var bucket string
	orig := newPresigner
	t.Cleanup(func() { newPresigner = orig })
	newPresigner = func(c *config.Config) uploadPresigner {
		bucket = c.S3Bucket
		return fp
	}

	out, err := execute(t, "", "presign", "profile", "--s3-bucket", "avatars")
	require.NoError(t, err)
	assert.Equal(t, media.KindProfilePicture, fp.kind)
	assert.Equal(t, "avatars", bucket)
	assert.Contains(t, out, "Key:        users/2025/04/07/abc")
	assert.Contains(t, out, "Upload URL: https://signed/put")
	assert.Contains(t, out, "Public URL: https://cdn/users/2025/04/07/abc")

	_, err = execute(t, "", "presign", "video")
	assert.ErrorContains(t, err, "unknown media kind")

	_, err = execute(t, "", "presign")
	assert.Error(t, err)

	fp.err = errors.New("presign put: denied")
	_, err = execute(t, "", "presign", "post")
	assert.ErrorContains(t, err, "denied")
}

func TestPresignCmd_UploadFile(t *testing.T) {
	orig, origPut := newPresigner, putPresigned
	t.Cleanup(func() { newPresigner, putPresigned = orig, origPut })
	newPresigner = func(c *config.Config) uploadPresigner { return &fakePresigner{} }

	var gotURL, gotCT string
	var gotData []byte
	putPresigned = func(ctx context.Context, url string, data []byte, contentType string) error {
		gotURL, gotData, gotCT = url, data, contentType
		return nil
	}

	path := filepath.Join(t.TempDir(), "cover.png")
	require.NoError(t, os.WriteFile(path, []byte("png-bytes"), 0o600))

	out, err := execute(t, "", "presign", "post", "--file", path, "--content-type", "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://signed/put", gotURL)
	assert.Equal(t, []byte("png-bytes"), gotData)
	assert.Equal(t, "image/png", gotCT)
	assert.Contains(t, out, "Uploaded "+path+" (9 bytes)")

	_, err = execute(t, "", "presign", "post", "--file", filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorContains(t, err, "read ")

	putPresigned = func(ctx context.Context, url string, data []byte, contentType string) error {
		return errors.New("upload failed: 403 Forbidden")
	}
	_, err = execute(t, "", "presign", "post", "--file", path)
	assert.ErrorContains(t, err, "403")
}
