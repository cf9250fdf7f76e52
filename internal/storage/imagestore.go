package storage

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"time"

	"ap-imagine-web/internal/config"

	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// ImageStore は生成された画像バイト列の保存と配信URLの解決を担当します。
// バケットが設定されていれば署名付きGCS URLを、そうでなければ
// 自サービスの /outputs/{name} を配信URLとして返します。
type ImageStore struct {
	cfg    config.Config
	reader remoteio.InputReader
	writer remoteio.OutputWriter
	signer remoteio.URLSigner
}

// NewImageStore は依存関係を注入して ImageStore を初期化します。
// signer は nil を許容します（ローカル実行時は自サービス経由で配信）。
func NewImageStore(cfg config.Config, reader remoteio.InputReader, writer remoteio.OutputWriter, signer remoteio.URLSigner) (*ImageStore, error) {
	if reader == nil {
		return nil, fmt.Errorf("reader is required")
	}
	if writer == nil {
		return nil, fmt.Errorf("writer is required")
	}

	return &ImageStore{
		cfg:    cfg,
		reader: reader,
		writer: writer,
		signer: signer,
	}, nil
}

// Save は画像データを保存し、配信用URLと保存先URIを返します。
func (s *ImageStore) Save(ctx context.Context, data []byte, mimeType string) (publicURL, storageURI string, err error) {
	name := objectName(data, mimeType)
	storageURI = s.cfg.GetGCSObjectURL(s.cfg.GetOutputPath(name))

	if err := s.writer.Write(ctx, storageURI, bytes.NewReader(data), mimeType); err != nil {
		return "", "", fmt.Errorf("画像の保存に失敗しました (uri: %s): %w", storageURI, err)
	}

	publicURL, err = s.resolvePublicURL(ctx, storageURI, name)
	if err != nil {
		return "", "", err
	}

	slog.InfoContext(ctx, "生成画像を保存しました", "uri", storageURI, "bytes", len(data))
	return publicURL, storageURI, nil
}

// Open は保存済み画像を配信用に読み出します。
func (s *ImageStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	uri := s.cfg.GetGCSObjectURL(s.cfg.GetOutputPath(name))
	rc, err := s.reader.Open(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("保存済み画像が見つかりません (uri: %s): %w", uri, err)
	}
	return rc, nil
}

// resolvePublicURL は保存済みオブジェクトの閲覧用URLを決定します。
func (s *ImageStore) resolvePublicURL(ctx context.Context, storageURI, name string) (string, error) {
	if s.signer != nil && s.cfg.GCSImageBucket != "" {
		signed, err := s.signer.GenerateSignedURL(ctx, storageURI, http.MethodGet, s.cfg.SignedURLExpiration)
		if err != nil {
			return "", fmt.Errorf("署名付きURLの生成に失敗しました: %w", err)
		}
		return signed, nil
	}

	u, err := url.JoinPath(s.cfg.ServiceURL, "outputs", name)
	if err != nil {
		return "", fmt.Errorf("配信URLの構築に失敗しました: %w", err)
	}
	return u, nil
}

// objectName は時刻とデータハッシュから衝突しにくいオブジェクト名を生成します。
func objectName(data []byte, mimeType string) string {
	now := time.Now()

	h := md5.New()
	h.Write(data)
	nanoBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(nanoBytes, uint64(now.UnixNano()))
	h.Write(nanoBytes)
	hash := fmt.Sprintf("%x", h.Sum(nil))[:8]

	ext := ".png"
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		ext = exts[len(exts)-1]
	}

	return fmt.Sprintf("%s_%s%s", now.Format("20060102_150405"), hash, ext)
}
