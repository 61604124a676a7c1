package imagecache

import (
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/kingpoem/moocscript/pkg/logger"
	"github.com/kingpoem/moocscript/pkg/util"
)

// ErrFetchFailed 下载失败（连接错误、超时或非2xx状态）
var ErrFetchFailed = errors.New("图片下载失败")

// Resolver 行内图片下载器。按URL为键缓存到本地目录，
// 缓存命中不发起网络请求，条目永不失效也不淘汰（与磁盘缓存的定位一致，
// 无界增长是有意设计）。未配置缓存目录时每次落到独立临时文件
type Resolver struct {
	cacheDir  string
	userAgent string
	client    *http.Client
}

// New 创建图片下载器。cacheDir为空表示不缓存
func New(cacheDir, userAgent string, timeout time.Duration) *Resolver {
	return &Resolver{
		cacheDir:  cacheDir,
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

// Resolve 返回图片的本地路径。失败返回错误，调用方自行降级，
// 这里绝不panic也不重试
func (r *Resolver) Resolve(rawURL string) (string, error) {
	key := cacheKey(rawURL)

	if r.cacheDir != "" {
		cached := filepath.Join(r.cacheDir, key)
		if util.FileExists(cached) {
			return cached, nil
		}
	}

	data, err := r.fetch(rawURL)
	if err != nil {
		logger.Warn("图片下载失败", logger.F("url", rawURL), logger.F("err", err))
		return "", err
	}

	if r.cacheDir != "" {
		target := filepath.Join(r.cacheDir, key)
		if err := util.SaveFile(target, data); err != nil {
			return "", err
		}
		return target, nil
	}

	// 无缓存目录时写独立命名的临时文件，调用之间不复用
	target := filepath.Join(os.TempDir(), fmt.Sprintf("mooc_img_%d%s", util.NewID(), path.Ext(key)))
	if err := os.WriteFile(target, data, 0644); err != nil {
		return "", err
	}
	return target, nil
}

// fetch 单次GET，固定超时，不重试
func (r *Resolver) fetch(rawURL string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrFetchFailed, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// cacheKey 由URL路径推导缓存文件名，没有扩展名时合成一个
func cacheKey(rawURL string) string {
	base := ""
	if u, err := url.Parse(rawURL); err == nil {
		base = path.Base(u.Path)
	}
	if base == "" || base == "." || base == "/" || path.Ext(base) == "" {
		h := fnv.New32a()
		h.Write([]byte(rawURL))
		return fmt.Sprintf("image_%d.jpg", h.Sum32()%100000)
	}
	return util.SanitizeFilename(base)
}
