package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 文件上传相关常量
const (
	MimeVideo       = "video/"
	MimeImage       = "image/"
	MimeOctetStream = "application/octet-stream"
)

var (
	// 回放视频仅接受浏览器可录制/常见导出的容器格式
	AllowedVideoMimeTypes  = []string{"video/mp4", "video/webm", "video/quicktime"}
	AllowedVideoExtensions = []string{".mp4", ".webm", ".mov"}
)
