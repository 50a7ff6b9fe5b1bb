// Package handler はproductフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog"

	"chupchup_backend/internal/api"
	"chupchup_backend/internal/feature/product/domain/entity"
	"chupchup_backend/internal/feature/product/transport/http/dto"
	"chupchup_backend/internal/feature/product/usecase"
)

const (
	msgMissingFields = "Campos obrigatórios faltando."
	msgCreateFailed  = "Erro ao cadastrar produto."
	msgCreated       = "Produto cadastrado com sucesso!"
	msgListFailed    = "Erro ao buscar produtos."
	msgLookupFailed  = "Erro ao buscar produto."
	msgDeleteFailed  = "Erro ao remover produto."
	msgDeleted       = "Produto removido com sucesso!"
	msgFileTooLarge  = "Arquivo muito grande."

	imageField = "imagem"

	// ids must fit a signed 64-bit column
	maxIDBits = 63
)

// ProductUsecase はカタログ操作のユースケースを定義します。
type ProductUsecase interface {
	Create(ctx context.Context, in usecase.CreateInput) (*entity.Product, error)
	List(ctx context.Context) ([]entity.Product, error)
	Delete(ctx context.Context, id uint) error
}

// ProductHandler は商品のHTTPリクエストを処理します。
type ProductHandler struct {
	products       ProductUsecase
	maxUploadBytes int64
}

// NewProductHandler creates a ProductHandler. maxUploadBytes limits the whole
// request body of a create; zero or less disables the limit.
func NewProductHandler(products ProductUsecase, maxUploadBytes int64) *ProductHandler {
	return &ProductHandler{products: products, maxUploadBytes: maxUploadBytes}
}

// Create handles POST /api/produtos (multipart/form-data, or JSON without an image).
// - nome・preco の欠落または不正な preco は400
// - 上限を超えるボディは413
// - 保存失敗は500
func (h *ProductHandler) Create(c *gin.Context) {
	log := zerolog.Ctx(c.Request.Context())

	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	var in usecase.CreateInput
	if c.ContentType() == binding.MIMEJSON {
		// JSONボディは画像なしの登録として扱う
		var req dto.CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.rejectBody(c, err)
			return
		}
		in = usecase.CreateInput{Name: req.Name, Description: req.Description, Price: req.Price.String()}
	} else {
		// 非multipartのボディはフィールド欠落として扱う
		if _, err := c.MultipartForm(); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			h.rejectBody(c, err)
			return
		}

		in = usecase.CreateInput{
			Name:  c.PostForm("nome"),
			Price: c.PostForm("preco"),
		}
		if desc, ok := c.GetPostForm("descricao"); ok {
			in.Description = &desc
		}

		fh, err := c.FormFile(imageField)
		switch {
		case err == nil:
			f, err := fh.Open()
			if err != nil {
				log.Error().Err(err).Str("filename", fh.Filename).Msg("failed to open uploaded image")
				c.JSON(http.StatusInternalServerError, api.ErrorResponse{Erro: msgCreateFailed})
				return
			}
			defer f.Close()
			in.Image = &usecase.ImageUpload{Filename: fh.Filename, Content: f}
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		default:
			log.Warn().Err(err).Msg("image field unreadable")
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Erro: msgMissingFields})
			return
		}
	}

	_, err := h.products.Create(c.Request.Context(), in)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, api.MessageResponse{Mensagem: msgCreated})
	case errors.Is(err, usecase.ErrMissingFields), errors.Is(err, usecase.ErrInvalidPrice):
		log.Info().Err(err).Msg("product rejected")
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Erro: msgMissingFields})
	default:
		log.Error().Err(err).Str("nome", in.Name).Msg("product create failed")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Erro: msgCreateFailed})
	}
}

// rejectBody answers an unreadable create body: 413 over the limit, 400 otherwise.
func (h *ProductHandler) rejectBody(c *gin.Context, err error) {
	log := zerolog.Ctx(c.Request.Context())

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		log.Warn().Int64("limit", tooLarge.Limit).Msg("product upload too large")
		c.JSON(http.StatusRequestEntityTooLarge, api.ErrorResponse{Erro: msgFileTooLarge})
		return
	}
	log.Warn().Err(err).Msg("product body parse failed")
	c.JSON(http.StatusBadRequest, api.ErrorResponse{Erro: msgMissingFields})
}

// List handles GET /api/produtos.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("product list failed")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Erro: msgListFailed})
		return
	}
	c.JSON(http.StatusOK, dto.NewProductList(products))
}

// Delete handles DELETE /api/produtos/:id. Unknown ids still answer 200.
func (h *ProductHandler) Delete(c *gin.Context) {
	log := zerolog.Ctx(c.Request.Context())

	// 数値でない・範囲外のIDはどの行にも一致しないため何もせず200
	id, err := strconv.ParseUint(c.Param("id"), 10, maxIDBits)
	if err != nil {
		log.Debug().Str("id", c.Param("id")).Msg("delete of unparseable id ignored")
		c.JSON(http.StatusOK, api.MessageResponse{Mensagem: msgDeleted})
		return
	}

	err = h.products.Delete(c.Request.Context(), uint(id))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, api.MessageResponse{Mensagem: msgDeleted})
	case errors.Is(err, usecase.ErrProductLookup):
		log.Error().Err(err).Uint64("product_id", id).Msg("product lookup failed")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Erro: msgLookupFailed})
	default:
		log.Error().Err(err).Uint64("product_id", id).Msg("product delete failed")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Erro: msgDeleteFailed})
	}
}
