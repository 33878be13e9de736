package server

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	assetdomain "github.com/servewell/storefront/internal/asset/domain"
)

// maxDesignAssetBytes caps uploaded artwork at 20 MiB.
const maxDesignAssetBytes = 20 << 20

func (s *Server) UploadDesignAsset(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if header.Size > maxDesignAssetBytes {
		AbortWithError(c, invalidRequestError())
		return
	}

	file, err := header.Open()
	if err != nil {
		AbortWithError(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxDesignAssetBytes+1))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if len(data) > maxDesignAssetBytes {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.assetSvc.Upload(c.Request.Context(), assetdomain.UploadRequest{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DownloadDesignAsset(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	asset, err := s.assetSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	contentType := asset.ContentType
	if strings.TrimSpace(contentType) == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", `inline; filename="`+asset.Filename+`"`)
	c.Data(http.StatusOK, contentType, asset.Data)
}
