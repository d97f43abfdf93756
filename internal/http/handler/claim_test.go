package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"claimdesk.app/server/internal/http/handler"
	"claimdesk.app/server/internal/http/middleware"
	"claimdesk.app/server/internal/model"
	"claimdesk.app/server/internal/service"
	"claimdesk.app/server/internal/upload"
)

var _ = Describe("ClaimHandler", func() {
	var (
		router *gin.Engine
		svc    *mockClaimService
		user   *model.User
		claim  model.Claim
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockClaimService{}
		user = &model.User{ID: 42, Name: "Carla", Email: "carla@example.com"}
		claim = model.Claim{
			ID:              1234567890123,
			OwnerID:         42,
			ReferenceNumber: "INT-00001",
			Title:           "Billing issue",
			Description:     "Charged twice",
			Status:          model.ClaimStatusPending,
			Priority:        model.PriorityHigh,
			Category:        model.CategoryBilling,
			CreatedAt:       time.Now(),
			UpdatedAt:       time.Now(),
		}

		h := handler.NewClaimHandler(svc)
		g := router.Group("/claims", asUser(user))
		g.GET("", h.List)
		g.POST("", h.Create)
		g.GET("/:id", h.Get)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
		g.PATCH("/:id/status", h.ChangeStatus)
		g.POST("/:id/comments", h.AddComment)
		g.GET("/:id/attachments/:attachmentId", h.DownloadAttachment)
	})

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	Describe("Create", func() {
		It("accepts multipart uploads and reports rejected files", func() {
			var gotInput service.ClaimInput
			var gotFiles []string
			svc.createFn = func(_ context.Context, a model.Actor, in service.ClaimInput, files []service.UploadedFile) (*service.CreateClaimResult, error) {
				Expect(a.UserID).To(Equal(int64(42)))
				gotInput = in
				for _, f := range files {
					rc, err := f.Open()
					Expect(err).NotTo(HaveOccurred())
					data, _ := io.ReadAll(rc)
					rc.Close()
					gotFiles = append(gotFiles, f.Name+":"+string(data))
				}
				return &service.CreateClaimResult{
					Claim: &claim,
					Rejected: []upload.Rejection{
						{Filename: "virus.exe", Reason: upload.ReasonTypeNotAllowed, Message: "not allowed"},
					},
				}, nil
			}

			body := &bytes.Buffer{}
			mw := multipart.NewWriter(body)
			Expect(mw.WriteField("title", "Billing issue")).To(Succeed())
			Expect(mw.WriteField("description", "Charged twice")).To(Succeed())
			Expect(mw.WriteField("category", "FACTURACION")).To(Succeed())
			Expect(mw.WriteField("priority", "ALTA")).To(Succeed())
			fw, err := mw.CreateFormFile("files", "invoice.pdf")
			Expect(err).NotTo(HaveOccurred())
			_, _ = fw.Write([]byte("%PDF-1.4"))
			Expect(mw.Close()).To(Succeed())

			req := httptest.NewRequest(http.MethodPost, "/claims", body)
			req.Header.Set("Content-Type", mw.FormDataContentType())
			w := serve(req)

			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(gotInput.Category).To(Equal(model.CategoryBilling))
			Expect(gotInput.Priority).To(Equal(model.PriorityHigh))
			Expect(gotFiles).To(Equal([]string{"invoice.pdf:%PDF-1.4"}))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["claim"]).To(HaveKeyWithValue("reference_number", "INT-00001"))
			Expect(resp["claim"]).To(HaveKeyWithValue("id", "1234567890123"))
			Expect(resp["rejected_files"]).To(HaveLen(1))
		})

		It("answers 413 with the limit when the body is cut off", func() {
			limited := gin.New()
			limited.POST("/claims", asUser(user), middleware.LimitBody(256), handler.NewClaimHandler(svc).Create)
			svc.createFn = func(context.Context, model.Actor, service.ClaimInput, []service.UploadedFile) (*service.CreateClaimResult, error) {
				Fail("service must not be called")
				return nil, nil
			}

			body := &bytes.Buffer{}
			mw := multipart.NewWriter(body)
			Expect(mw.WriteField("title", "Billing issue")).To(Succeed())
			fw, err := mw.CreateFormFile("files", "scan.pdf")
			Expect(err).NotTo(HaveOccurred())
			_, _ = fw.Write(bytes.Repeat([]byte("x"), 4096))
			Expect(mw.Close()).To(Succeed())

			req := httptest.NewRequest(http.MethodPost, "/claims", body)
			req.Header.Set("Content-Type", mw.FormDataContentType())
			w := httptest.NewRecorder()
			limited.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusRequestEntityTooLarge))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["limit_bytes"]).To(BeNumerically("==", 256))
			Expect(resp["error"]).To(ContainSubstring("256 bytes"))
		})

		It("returns field errors as 400", func() {
			svc.createFn = func(context.Context, model.Actor, service.ClaimInput, []service.UploadedFile) (*service.CreateClaimResult, error) {
				return nil, &service.ValidationError{Fields: map[string]string{"title": "must not be empty"}}
			}

			req := httptest.NewRequest(http.MethodPost, "/claims", strings.NewReader(`{"description":"x"}`))
			req.Header.Set("Content-Type", "application/json")
			w := serve(req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["error"]).To(Equal("validation failed"))
			Expect(resp["fields"]).To(HaveKey("title"))
		})

		It("asks the client to retry when reference allocation keeps conflicting", func() {
			svc.createFn = func(context.Context, model.Actor, service.ClaimInput, []service.UploadedFile) (*service.CreateClaimResult, error) {
				return nil, service.ErrReferenceConflict
			}

			req := httptest.NewRequest(http.MethodPost, "/claims", strings.NewReader(`{}`))
			req.Header.Set("Content-Type", "application/json")
			w := serve(req)

			Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
			Expect(w.Header().Get("Retry-After")).To(Equal("1"))
		})
	})

	It("lists claims with the search query", func() {
		svc.listFn = func(_ context.Context, _ model.Actor, search string) ([]model.Claim, error) {
			Expect(search).To(Equal("billing"))
			return []model.Claim{claim}, nil
		}

		w := serve(httptest.NewRequest(http.MethodGet, "/claims?q=billing", nil))
		Expect(w.Code).To(Equal(http.StatusOK))
		var resp struct {
			Claims []map[string]any `json:"claims"`
		}
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Claims).To(HaveLen(1))
		Expect(resp.Claims[0]["status_label"]).To(Equal("Pending"))
	})

	It("returns 404 for claims the caller cannot see", func() {
		svc.getFn = func(context.Context, model.Actor, int64) (*model.ClaimDetail, error) {
			return nil, service.ErrClaimNotFound
		}

		w := serve(httptest.NewRequest(http.MethodGet, "/claims/99", nil))
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("rejects malformed ids", func() {
		w := serve(httptest.NewRequest(http.MethodGet, "/claims/abc", nil))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("posts a comment and returns the refreshed detail", func() {
		svc.addCommentFn = func(_ context.Context, _ model.Actor, claimID int64, content string) (*model.Comment, error) {
			Expect(claimID).To(Equal(claim.ID))
			Expect(content).To(Equal("any news?"))
			return &model.Comment{ID: 5, ClaimID: claimID, Content: content}, nil
		}
		svc.getFn = func(context.Context, model.Actor, int64) (*model.ClaimDetail, error) {
			return &model.ClaimDetail{
				Claim:    claim,
				Comments: []model.Comment{{ID: 5, ClaimID: claim.ID, AuthorID: 42, Content: "any news?"}},
			}, nil
		}

		req := httptest.NewRequest(http.MethodPost, "/claims/1234567890123/comments", strings.NewReader(`{"content":"any news?"}`))
		req.Header.Set("Content-Type", "application/json")
		w := serve(req)

		Expect(w.Code).To(Equal(http.StatusCreated))
		var resp map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp["comments"]).To(HaveLen(1))
		Expect(resp["attachments"]).To(BeEmpty())
	})

	It("changes status", func() {
		svc.changeStatusFn = func(_ context.Context, _ model.Actor, _ int64, status model.ClaimStatus) (*model.Claim, error) {
			c := claim
			c.Status = status
			return &c, nil
		}

		req := httptest.NewRequest(http.MethodPatch, "/claims/1234567890123/status", strings.NewReader(`{"status":"RESUELTO"}`))
		req.Header.Set("Content-Type", "application/json")
		w := serve(req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"status":"RESUELTO"`))
	})

	It("updates a claim", func() {
		svc.updateFn = func(_ context.Context, _ model.Actor, _ int64, in service.ClaimInput) (*model.Claim, error) {
			c := claim
			c.Title = in.Title
			return &c, nil
		}

		req := httptest.NewRequest(http.MethodPut, "/claims/1234567890123", strings.NewReader(
			`{"title":"New title","description":"d","category":"OTRO","priority":"BAJA"}`))
		req.Header.Set("Content-Type", "application/json")
		w := serve(req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"title":"New title"`))
	})

	It("deletes a claim", func() {
		svc.deleteFn = func(context.Context, model.Actor, int64) error { return nil }

		w := serve(httptest.NewRequest(http.MethodDelete, "/claims/1234567890123", nil))
		Expect(w.Code).To(Equal(http.StatusNoContent))
	})

	It("hides internal errors behind a generic message", func() {
		svc.deleteFn = func(context.Context, model.Actor, int64) error { return errors.New("pg: connection refused") }

		w := serve(httptest.NewRequest(http.MethodDelete, "/claims/1234567890123", nil))
		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(w.Body.String()).NotTo(ContainSubstring("connection refused"))
	})

	It("streams attachments", func() {
		svc.openAttachmentFn = func(context.Context, model.Actor, int64, int64) (*model.Attachment, io.ReadCloser, error) {
			return &model.Attachment{
				ID:               7,
				ClaimID:          claim.ID,
				StorageKey:       "claims/1/INT-00001_abcdef0123.pdf",
				OriginalFilename: "factura marzo.pdf",
				MIMEType:         "application/pdf",
				SizeBytes:        8,
			}, io.NopCloser(strings.NewReader("%PDF-1.4")), nil
		}

		w := serve(httptest.NewRequest(http.MethodGet, "/claims/1234567890123/attachments/7", nil))
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(Equal("application/pdf"))
		Expect(w.Header().Get("Content-Disposition")).To(Equal("inline; filename=factura-marzo.pdf"))
		Expect(w.Header().Get("X-Content-Type-Options")).To(Equal("nosniff"))
		Expect(w.Body.String()).To(Equal("%PDF-1.4"))
	})
})
