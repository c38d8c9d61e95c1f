package controllers

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pulseblog/api-go/config"
	"github.com/pulseblog/api-go/utils"
)

// maxImageSize caps post image uploads at 10 MB.
const maxImageSize = 10 << 20

type UploadController struct {
	Client        *s3.Client
	StorageConfig *config.StorageConfig
}

type PresignRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	FileSize    int64  `json:"fileSize" binding:"required"`
}

type PresignResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"`
}

func NewUploadController() *UploadController {
	storageConfig := config.GetStorageConfig()

	client := s3.New(s3.Options{
		BaseEndpoint: aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", storageConfig.AccountID)),
		Credentials: credentials.NewStaticCredentialsProvider(
			storageConfig.AccessKeyID,
			storageConfig.SecretAccessKey,
			"",
		),
		Region: storageConfig.Region,
	})

	return &UploadController{
		Client:        client,
		StorageConfig: storageConfig,
	}
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// PresignUpload godoc
// @Summary Get a presigned URL for a post image
// @Description The client PUTs the file to the returned URL and sends the
// key back in the post create request; the post stores only the key.
// @Tags uploads
// @Accept json
// @Produce json
// @Param upload body PresignRequest true "Upload request"
// @Success 200 {object} PresignResponse
// @Router /uploads/presign [post]
func (uc *UploadController) PresignUpload(c *gin.Context) {
	user := utils.GetUser(c)
	var req PresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !allowedImageTypes[req.ContentType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported image type"})
		return
	}
	if req.FileSize <= 0 || req.FileSize > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds limit"})
		return
	}

	ext := strings.ToLower(filepath.Ext(req.FileName))
	key := fmt.Sprintf("posts/%d/%s%s", user.UserID, uuid.New().String(), ext)

	presigner := s3.NewPresignClient(uc.Client)
	presigned, err := presigner.PresignPutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(uc.StorageConfig.BucketName),
		Key:         aws.String(key),
		ContentType: aws.String(req.ContentType),
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload URL"})
		return
	}

	c.JSON(http.StatusOK, PresignResponse{
		UploadURL: presigned.URL,
		FileURL:   fmt.Sprintf("%s/%s", uc.StorageConfig.PublicURL, key),
		Key:       key,
		ExpiresIn: int((15 * time.Minute).Seconds()),
	})
}
