package drivers

import (
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"go.uber.org/zap"
)

// AzureDriver implements the Driver interface for Azure Blob Storage.
// Containers map directly to blob containers.
type AzureDriver struct {
	logger *zap.Logger
	client *azblob.Client
}

// NewAzureDriver creates an Azure Blob Storage driver from a connection
// string (the usual deployment shape, supplied via environment).
func NewAzureDriver(connectionString string, logger *zap.Logger) (*AzureDriver, error) {
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("create blob client: %w", err)
	}
	return &AzureDriver{logger: logger, client: client}, nil
}

// NewAzureDriverWithIdentity creates an Azure Blob Storage driver for the
// given service URL using the ambient Azure identity (managed identity,
// workload identity, az CLI).
func NewAzureDriverWithIdentity(serviceURL string, logger *zap.Logger) (*AzureDriver, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("acquire azure credential: %w", err)
	}
	client, err := azblob.NewClient(serviceURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("create blob client: %w", err)
	}
	return &AzureDriver{logger: logger, client: client}, nil
}

// Name returns the driver name.
func (d *AzureDriver) Name() string {
	return "azure"
}

// Get retrieves a blob from a container.
func (d *AzureDriver) Get(ctx context.Context, container, key string) (io.ReadCloser, error) {
	resp, err := d.client.DownloadStream(ctx, container, key, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
			return nil, ErrNotFound(container, key)
		}
		return nil, fmt.Errorf("download blob %s/%s: %w", container, key, err)
	}
	return resp.Body, nil
}

// Put uploads a blob, overwriting any existing blob under the same name.
func (d *AzureDriver) Put(ctx context.Context, container, key string, data io.Reader, contentType string) error {
	opts := &azblob.UploadStreamOptions{}
	if contentType != "" {
		opts.HTTPHeaders = &blob.HTTPHeaders{BlobContentType: &contentType}
	}

	if _, err := d.client.UploadStream(ctx, container, key, data, opts); err != nil {
		return fmt.Errorf("upload blob %s/%s: %w", container, key, err)
	}
	return nil
}

// Exists reports whether a blob is present in a container.
func (d *AzureDriver) Exists(ctx context.Context, container, key string) (bool, error) {
	blobClient := d.client.ServiceClient().NewContainerClient(container).NewBlobClient(key)

	_, err := blobClient.GetProperties(ctx, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get blob properties %s/%s: %w", container, key, err)
	}
	return true, nil
}

// EnsureContainer creates the container if it does not already exist.
func (d *AzureDriver) EnsureContainer(ctx context.Context, container string) error {
	_, err := d.client.CreateContainer(ctx, container, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
			return nil
		}
		return fmt.Errorf("create container %s: %w", container, err)
	}

	d.logger.Info("created container", zap.String("container", container))
	return nil
}
