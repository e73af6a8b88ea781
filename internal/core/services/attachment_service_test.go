package services_test

import (
	"context"
	"testing"

	"github.com/orbitcommerce/collab_backend/internal/apperrors"
	"github.com/orbitcommerce/collab_backend/internal/core/domain"
	portssvc "github.com/orbitcommerce/collab_backend/internal/core/ports/services"
	"github.com/orbitcommerce/collab_backend/internal/core/services"
	"github.com/orbitcommerce/collab_backend/internal/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AttachmentServiceTestSuite struct {
	suite.Suite
	mockAttachmentRepo *MockAttachmentRepository
	fileStore          *storage.FileStore
	service            portssvc.AttachmentSvcFacade
}

func (suite *AttachmentServiceTestSuite) SetupTest() {
	suite.mockAttachmentRepo = new(MockAttachmentRepository)
	suite.fileStore = storage.NewMemFileStore("/api/v1/attachments/files")
	suite.service = services.NewAttachmentService(suite.mockAttachmentRepo, suite.fileStore)
}

func (suite *AttachmentServiceTestSuite) TestUploadAttachment_Success() {
	ctx := context.Background()
	uploaderID := uuid.NewString()
	data := []byte("report contents")

	suite.mockAttachmentRepo.On("SaveAttachment", ctx, mock.MatchedBy(func(a domain.FileAttachment) bool {
		return a.FileName == "report.pdf" && a.UploadedBy == uploaderID &&
			a.SizeBytes == int64(len(data)) && a.MessageID == nil && a.StoragePath != ""
	})).Return(nil).Once()

	attachment, err := suite.service.UploadAttachment(ctx, uploaderID, "report.pdf", "application/pdf", data)

	suite.Require().NoError(err)
	suite.Require().NotNil(attachment)
	suite.NotEmpty(attachment.AttachmentID)

	stored, err := suite.fileStore.Get(ctx, attachment.StoragePath)
	suite.Require().NoError(err)
	suite.Equal(data, stored)
	suite.mockAttachmentRepo.AssertExpectations(suite.T())
}

func (suite *AttachmentServiceTestSuite) TestUploadAttachment_EmptyFileRejected() {
	ctx := context.Background()

	attachment, err := suite.service.UploadAttachment(ctx, uuid.NewString(), "empty.txt", "text/plain", nil)

	suite.Require().Error(err)
	suite.Nil(attachment)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AttachmentServiceTestSuite) TestUploadAttachment_MissingFilenameRejected() {
	ctx := context.Background()

	attachment, err := suite.service.UploadAttachment(ctx, uuid.NewString(), "", "text/plain", []byte("x"))

	suite.Require().Error(err)
	suite.Nil(attachment)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AttachmentServiceTestSuite) TestUploadAttachment_DefaultsContentType() {
	ctx := context.Background()

	suite.mockAttachmentRepo.On("SaveAttachment", ctx, mock.MatchedBy(func(a domain.FileAttachment) bool {
		return a.ContentType == "application/octet-stream"
	})).Return(nil).Once()

	attachment, err := suite.service.UploadAttachment(ctx, uuid.NewString(), "blob", "", []byte("x"))

	suite.Require().NoError(err)
	suite.Equal("application/octet-stream", attachment.ContentType)
}

func (suite *AttachmentServiceTestSuite) TestUploadAttachment_RecordFailureRemovesOrphan() {
	ctx := context.Background()
	expectedErr := assert.AnError
	var storedPath string

	suite.mockAttachmentRepo.On("SaveAttachment", ctx, mock.Anything).Run(func(args mock.Arguments) {
		storedPath = args.Get(1).(domain.FileAttachment).StoragePath
	}).Return(expectedErr).Once()

	attachment, err := suite.service.UploadAttachment(ctx, uuid.NewString(), "doomed.txt", "text/plain", []byte("x"))

	suite.Require().Error(err)
	suite.Nil(attachment)
	suite.ErrorIs(err, expectedErr)

	_, getErr := suite.fileStore.Get(ctx, storedPath)
	suite.ErrorIs(getErr, apperrors.ErrNotFound)
}

func (suite *AttachmentServiceTestSuite) TestDownloadAttachment_Success() {
	ctx := context.Background()
	data := []byte("payload")
	path, err := suite.fileStore.Save(ctx, data, "notes.txt", "text/plain")
	suite.Require().NoError(err)
	attachmentID := uuid.NewString()
	record := &domain.FileAttachment{AttachmentID: attachmentID, FileName: "notes.txt", StoragePath: path}

	suite.mockAttachmentRepo.On("FindAttachmentByID", ctx, attachmentID).Return(record, nil).Once()

	attachment, got, err := suite.service.DownloadAttachment(ctx, attachmentID)

	suite.Require().NoError(err)
	suite.Equal(record, attachment)
	suite.Equal(data, got)
}

func (suite *AttachmentServiceTestSuite) TestDownloadAttachment_NotFound() {
	ctx := context.Background()
	attachmentID := uuid.NewString()

	suite.mockAttachmentRepo.On("FindAttachmentByID", ctx, attachmentID).Return(nil, apperrors.ErrNotFound).Once()

	attachment, data, err := suite.service.DownloadAttachment(ctx, attachmentID)

	suite.Require().Error(err)
	suite.Nil(attachment)
	suite.Nil(data)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestAttachmentService(t *testing.T) {
	suite.Run(t, new(AttachmentServiceTestSuite))
}
