package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"fleetadmin/internal/services"
	"fleetadmin/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	multipartDataField  = "data"
	multipartImageField = "image"
)

// parseID reads a hex ObjectID path parameter and answers 400 when it is malformed.
func parseID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, utils.ErrInvalidID)
		return primitive.NilObjectID, false
	}
	return id, true
}

// queryID reads an optional hex ObjectID query parameter.
func queryID(c *gin.Context, name string) (*primitive.ObjectID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid "+name)
		return nil, false
	}
	return &id, true
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, utils.ErrInvalidRequestBody)
		return false
	}
	return true
}

// bindWithImage accepts either a JSON body or a multipart form carrying the
// JSON document in "data" and an optional file in "image".
func bindWithImage(c *gin.Context, req interface{}) (*services.ImageUpload, bool) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return nil, bindJSON(c, req)
	}

	if data := c.PostForm(multipartDataField); data != "" {
		if err := json.Unmarshal([]byte(data), req); err != nil {
			utils.BadRequestResponse(c, utils.ErrInvalidRequestBody)
			return nil, false
		}
	}

	header, err := c.FormFile(multipartImageField)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, true
		}
		utils.BadRequestResponse(c, utils.ErrInvalidRequestBody)
		return nil, false
	}
	if header.Size > utils.MaxImageSize {
		utils.BadRequestResponse(c, utils.ErrFileTooLarge)
		return nil, false
	}

	file, err := header.Open()
	if err != nil {
		utils.BadRequestResponse(c, utils.ErrInvalidRequestBody)
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, utils.MaxImageSize+1))
	if err != nil {
		utils.BadRequestResponse(c, utils.ErrInvalidRequestBody)
		return nil, false
	}
	if int64(len(data)) > utils.MaxImageSize {
		utils.BadRequestResponse(c, utils.ErrFileTooLarge)
		return nil, false
	}

	return &services.ImageUpload{Filename: header.Filename, Reader: bytes.NewReader(data)}, true
}

func listResponse(c *gin.Context, items interface{}, params *utils.PaginationParams, total int64) {
	utils.SuccessResponseWithMeta(c, items, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}
