package storage

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/Backblaze/blazer/b2"
	"github.com/VeranoAtelier/verano-web/config"
	"github.com/VeranoAtelier/verano-web/internal/frontmatter"
)

// Client reads album photos and page markdown from a B2 bucket. Photo
// objects live under <prefix><album>/full/ and carry alt/caption/order in
// their object info; album pages live at <prefix><album>/page.md.
type Client struct {
	prefix        string
	publicBaseURL string
	bucket        *b2.Bucket
	b2cl          *b2.Client
}

func NewClient(cfg *config.B2Config) (*Client, error) {
	b2cl, err := b2.NewClient(context.Background(), cfg.KeyID, cfg.ApplicationKey)
	if err != nil {
		return nil, err
	}

	bucket, err := b2cl.Bucket(context.Background(), cfg.BucketName)
	if err != nil {
		return nil, err
	}

	return &Client{
		b2cl:          b2cl,
		bucket:        bucket,
		prefix:        cfg.Prefix,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
	}, nil
}

type Photo struct {
	FileName string
	URL      string
	Alt      string
	Caption  string
	Order    int
}

// ListAlbum enumerates the uploaded image objects of one album, ordered
// by their order attribute and then by name.
func (c *Client) ListAlbum(album string) ([]*Photo, error) {
	photos := []*Photo{}

	iter := c.bucket.List(context.Background(), b2.ListPrefix(c.prefix+album+"/full/"))

	for iter.Next() {
		obj := iter.Object()
		if obj == nil {
			return nil, fmt.Errorf("failed to reference object in B2 bucket")
		}

		attrs, err := obj.Attrs(context.Background())
		if err != nil {
			return nil, fmt.Errorf("get attributes for object: %w", err)
		}

		if attrs.Status != b2.Uploaded {
			continue
		}

		if !strings.HasPrefix(attrs.ContentType, "image/") {
			continue
		}

		order := 0
		if raw, ok := attrs.Info["order"]; ok {
			if parsed, err := strconv.Atoi(raw); err == nil {
				order = parsed
			}
		}

		photos = append(photos, &Photo{
			FileName: obj.Name(),
			URL:      c.publicBaseURL + "/" + obj.Name(),
			Alt:      attrs.Info["alt"],
			Caption:  attrs.Info["caption"],
			Order:    order,
		})
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("iterate over B2 objects: %w", err)
	}

	sort.SliceStable(photos, func(i, j int) bool {
		if photos[i].Order != photos[j].Order {
			return photos[i].Order < photos[j].Order
		}
		return photos[i].FileName < photos[j].FileName
	})

	return photos, nil
}

func (c *Client) ReadAll(path string) ([]byte, error) {
	obj := c.bucket.Object(c.prefix + path)
	if obj == nil {
		return nil, fmt.Errorf("failed to reference object in B2 bucket")
	}
	attrs, err := obj.Attrs(context.Background())
	if err != nil {
		return nil, fmt.Errorf("error getting attributes of an object: %w", err)
	}

	reader := obj.NewReader(context.Background())
	defer reader.Close()

	content, err := readFull(reader, attrs.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}

	return content, nil
}

// readFull drains exactly size bytes; object readers deliver content in
// chunks, so a single Read call may come up short.
func readFull(r io.Reader, size int64) ([]byte, error) {
	content := make([]byte, size)
	if _, err := io.ReadFull(r, content); err != nil {
		return nil, err
	}
	return content, nil
}

// ReadAlbumPage fetches an album's page markdown and splits off its
// frontmatter metadata.
func (c *Client) ReadAlbumPage(album string) (metadata *frontmatter.Metadata, markdown []byte, err error) {
	contentBytes, err := c.ReadAll(album + "/page.md")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read album page for frontmatter parsing: %w", err)
	}

	return frontmatter.ParseFrontmatter(contentBytes)
}
