package service

import (
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bangmod-market/internal/config"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gosimple/slug"
	"github.com/spf13/afero"
)

// FileStorage 上传文件存储接口，文件按实体目录存放
type FileStorage interface {
	Store(folder string, entityID uint, originalName string, size int64, content io.ReadSeeker) (string, error)
	Delete(folder, fileName string) error
	DeleteAll(folder string, entityID uint) error
}

// LocalFileStorage 基于 afero 的本地文件存储
type LocalFileStorage struct {
	fs  afero.Fs
	cfg config.UploadConfig
}

// NewLocalFileStorage 创建文件存储，fs 为空时使用操作系统文件系统
func NewLocalFileStorage(fs afero.Fs, cfg config.UploadConfig) *LocalFileStorage {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if strings.TrimSpace(cfg.Dir) == "" {
		cfg.Dir = "./uploads"
	}
	return &LocalFileStorage{fs: fs, cfg: cfg}
}

// Store 校验并保存文件，返回生成的文件名 {entityID}.{slug}{ext}，重名时追加序号
func (s *LocalFileStorage) Store(folder string, entityID uint, originalName string, size int64, content io.ReadSeeker) (string, error) {
	if s.cfg.MaxSize > 0 && size > s.cfg.MaxSize {
		return "", ErrFileTooLarge
	}
	ext := strings.ToLower(filepath.Ext(originalName))
	if len(s.cfg.AllowedExtensions) > 0 && (ext == "" || !isAllowedExtension(ext, s.cfg.AllowedExtensions)) {
		return "", ErrFileTypeNotAllowed
	}
	if err := s.checkContent(content); err != nil {
		return "", err
	}

	dir := s.folderPath(folder)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	fileName, err := s.availableName(dir, entityID, originalName, ext)
	if err != nil {
		return "", err
	}

	dst, err := s.fs.OpenFile(path.Join(dir, fileName), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := content.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, content); err != nil {
		return "", err
	}
	return fileName, nil
}

// Delete 删除单个文件，不存在时忽略
func (s *LocalFileStorage) Delete(folder, fileName string) error {
	name := filepath.Base(strings.TrimSpace(fileName))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return nil
	}
	err := s.fs.Remove(path.Join(s.folderPath(folder), name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// DeleteAll 删除某实体的全部文件
func (s *LocalFileStorage) DeleteAll(folder string, entityID uint) error {
	dir := s.folderPath(folder)
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	prefix := fmt.Sprintf("%d.", entityID)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		if err := s.fs.Remove(path.Join(dir, entry.Name())); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

func (s *LocalFileStorage) folderPath(folder string) string {
	return path.Join(filepath.ToSlash(s.cfg.Dir), slug.Make(folder))
}

func (s *LocalFileStorage) availableName(dir string, entityID uint, originalName, ext string) (string, error) {
	base := slug.Make(strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName)))
	if base == "" {
		base = "file"
	}
	candidate := fmt.Sprintf("%d.%s%s", entityID, base, ext)
	for i := 1; ; i++ {
		exists, err := afero.Exists(s.fs, path.Join(dir, candidate))
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%d.%s-%d%s", entityID, base, i, ext)
	}
}

func (s *LocalFileStorage) checkContent(content io.ReadSeeker) error {
	buffer := make([]byte, 512)
	n, err := content.Read(buffer)
	if err != nil && err != io.EOF {
		return err
	}
	contentType := http.DetectContentType(buffer[:n])
	if len(s.cfg.AllowedTypes) > 0 && !containsFold(s.cfg.AllowedTypes, contentType) {
		return ErrFileTypeNotAllowed
	}
	if !strings.HasPrefix(contentType, "image/") || strings.EqualFold(contentType, "image/webp") {
		return nil
	}
	if _, err := content.Seek(0, io.SeekStart); err != nil {
		return err
	}
	imgCfg, _, err := image.DecodeConfig(content)
	if err != nil {
		return ErrFileTypeNotAllowed
	}
	if (s.cfg.MaxWidth > 0 && imgCfg.Width > s.cfg.MaxWidth) || (s.cfg.MaxHeight > 0 && imgCfg.Height > s.cfg.MaxHeight) {
		return ErrImageTooLarge
	}
	return nil
}

func isAllowedExtension(ext string, allowed []string) bool {
	for _, allowedExt := range allowed {
		normalized := strings.ToLower(strings.TrimSpace(allowedExt))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if ext == normalized {
			return true
		}
	}
	return false
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), target) {
			return true
		}
	}
	return false
}
