package summary

import (
	"errors"
	"net/http"

	"genai-summarizer/internal/domain/entity"
	"genai-summarizer/internal/handler/http/respond"
	sumUC "genai-summarizer/internal/usecase/summary"
)

// multipartOverhead is the allowance for multipart headers and other form
// fields on top of the file size limit.
const multipartOverhead = 64 << 10

type FileHandler struct{ Svc *sumUC.Service }

// ServeHTTP ファイル要約
// @Summary      ファイル要約
// @Description  アップロードされた txt / pdf / docx ファイルからテキストを抽出して要約します
// @Tags         summaries
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        file           formData file   true  "要約対象ファイル (.txt, .pdf, .docx)"
// @Param        summary_length formData string false "short / medium / long" default(medium)
// @Success      200 {object} DTO "要約結果"
// @Failure      400 {object} respond.ErrorBody "形式またはサイズが不正"
// @Failure      401 {object} respond.ErrorBody "認証情報が不正"
// @Failure      422 {object} respond.ErrorBody "テキスト抽出失敗"
// @Failure      500 {object} respond.ErrorBody "要約失敗"
// @Router       /api/summarize/file [post]
func (h FileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ownerID, err := owner(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	maxSize := h.Svc.Limits.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			respond.Error(w, r, entity.FileSizeError(maxSize))
		default:
			respond.Error(w, r, entity.ValidationError("No file provided"))
		}
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, r, entity.ValidationError("No file provided"))
		return
	}
	defer func() { _ = file.Close() }()

	tier, err := entity.ParseLengthTier(r.FormValue("summary_length"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	in := sumUC.FileInput{Filename: header.Filename, Content: file}
	rec, err := h.Svc.Summarize(r.Context(), in, tier, ownerID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(rec))
}
