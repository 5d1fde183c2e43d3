package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SaeeDawod/gen-nft-app/internal/contract"
	ioutils "github.com/SaeeDawod/gen-nft-app/internal/io"
	"github.com/SaeeDawod/gen-nft-app/internal/model"
)

// maxBatchCount bounds one generate request.
const maxBatchCount = 1000

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// generateHandler produces a local batch starting at the next free id.
func (s *Server) generateHandler(c *gin.Context) {
	var req struct {
		Count int `json:"count"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Count <= 0 {
		req.Count = 1
	}
	if req.Count > maxBatchCount {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("count must be at most %d", maxBatchCount)})
		return
	}

	ctx := c.Request.Context()

	s.genMu.Lock()
	defer s.genMu.Unlock()

	startID, err := s.manager.NextTokenID(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	generated, err := s.manager.GenerateBatch(ctx, startID, req.Count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"first_id": startID, "generated": generated})
}

// mintHandler runs the full pipeline for one token.
func (s *Server) mintHandler(c *gin.Context) {
	if s.manager.Contract() == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "contract service is not configured"})
		return
	}

	var req struct {
		To string `json:"to"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	recipient, err := contract.ParseAddress(req.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.genMu.Lock()
	defer s.genMu.Unlock()

	result, err := s.manager.MintAndGenerate(c.Request.Context(), recipient)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token_id":  result.Token.ID,
		"tx_hash":   result.TxHash,
		"image_url": result.ImageURL,
		"metadata":  result.Metadata,
	})
}

// tokenFromParam parses the :id route parameter into a token with its
// computed paths.
func (s *Server) tokenFromParam(c *gin.Context) (*model.Token, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid token id"})
		return nil, false
	}
	return model.NewToken(s.manager.Generator().Collection(), id), true
}

func (s *Server) tokenImageHandler(c *gin.Context) {
	token, ok := s.tokenFromParam(c)
	if !ok {
		return
	}
	if _, err := os.Stat(token.ImagePath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "token image not found"})
		return
	}
	c.File(token.ImagePath)
}

func (s *Server) tokenMetadataHandler(c *gin.Context) {
	token, ok := s.tokenFromParam(c)
	if !ok {
		return
	}
	if _, err := os.Stat(token.MetadataPath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "token metadata not found"})
		return
	}
	c.File(token.MetadataPath)
}

// tokenCardHandler renders the share card for a generated token.
func (s *Server) tokenCardHandler(c *gin.Context) {
	token, ok := s.tokenFromParam(c)
	if !ok {
		return
	}

	card, err := s.manager.Generator().ShareCard(c.Request.Context(), token.ID)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c.JSON(http.StatusNotFound, gin.H{"error": "token image not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, card); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filename := fmt.Sprintf("%s-%d.png", ioutils.SanitizeFileName(s.settings.CollectionName), token.ID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (s *Server) transfersHandler(c *gin.Context) {
	if s.indexer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "indexer is not configured"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a number"})
		return
	}

	transfers, err := s.indexer.Transfers(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(transfers), "transfers": transfers})
}

// requireAdminToken guards the admin group. With no token configured the
// group is open; otherwise requests need the matching bearer token.
func (s *Server) requireAdminToken(c *gin.Context) {
	if s.settings.ServerAdminToken == "" {
		c.Next()
		return
	}
	if c.GetHeader("Authorization") != "Bearer "+s.settings.ServerAdminToken {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.Next()
}

func (s *Server) collectReservesHandler(c *gin.Context) {
	s.adminTx(c, (*contract.Client).CollectReserves)
}

func (s *Server) startSaleHandler(c *gin.Context) {
	s.adminTx(c, (*contract.Client).StartPublicSale)
}

func (s *Server) pauseHandler(c *gin.Context) {
	s.adminTx(c, (*contract.Client).Pause)
}

func (s *Server) unpauseHandler(c *gin.Context) {
	s.adminTx(c, (*contract.Client).Unpause)
}

func (s *Server) setBaseURIHandler(c *gin.Context) {
	client := s.manager.Contract()
	if client == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "contract service is not configured"})
		return
	}

	var req struct {
		BaseURI string `json:"base_uri"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.BaseURI == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "base_uri is required"})
		return
	}

	txHash, err := client.SetBaseURI(c.Request.Context(), req.BaseURI)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tx_hash": txHash})
}

// adminTx runs one no-argument contract verb and returns its tx hash.
func (s *Server) adminTx(c *gin.Context, call func(*contract.Client, context.Context) (string, error)) {
	client := s.manager.Contract()
	if client == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "contract service is not configured"})
		return
	}

	txHash, err := call(client, c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tx_hash": txHash})
}
