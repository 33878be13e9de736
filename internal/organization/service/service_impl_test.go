package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	catalogdomain "github.com/servewell/storefront/internal/catalog/domain"
	catalogrepository "github.com/servewell/storefront/internal/catalog/repository"
	organizationdomain "github.com/servewell/storefront/internal/organization/domain"
	organizationrepository "github.com/servewell/storefront/internal/organization/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newOrgService(t *testing.T) (organizationdomain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&organizationdomain.Organization{}, &catalogdomain.Product{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := NewService(db, zap.NewNop(), node, organizationrepository.Provide(), catalogrepository.Provide())
	return svc, db, node
}

func TestCreateOrganization(t *testing.T) {
	svc, _, _ := newOrgService(t)

	resp, err := svc.Create(context.Background(), organizationdomain.CreateRequest{Name: "Acme Catering Ltd."})
	require.NoError(t, err)
	assert.Equal(t, "Acme Catering Ltd.", resp.Name)
	assert.Equal(t, "acme-catering-ltd", resp.Slug)

	_, err = svc.Create(context.Background(), organizationdomain.CreateRequest{Name: "   "})
	assert.ErrorIs(t, err, organizationdomain.ErrInvalidName)
}

func TestDeleteOrganizationBlockedByInstanceProducts(t *testing.T) {
	svc, db, node := newOrgService(t)

	resp, err := svc.Create(context.Background(), organizationdomain.CreateRequest{Name: "Acme"})
	require.NoError(t, err)
	orgID, err := snowflake.ParseString(resp.ID)
	require.NoError(t, err)

	product := catalogdomain.Product{
		ID:    node.Generate(),
		OrgID: &orgID,
		Kind:  catalogdomain.ProductKindCustomizedInstance,
		Name:  "Acme Branded Cup",
		Slug:  "acme-branded-cup",
	}
	require.NoError(t, db.Create(&product).Error)

	err = svc.Delete(context.Background(), resp.ID)
	assert.ErrorIs(t, err, organizationdomain.ErrHasInstanceProducts)

	// Removing the instance product unblocks the delete.
	require.NoError(t, db.Delete(&product).Error)
	require.NoError(t, svc.Delete(context.Background(), resp.ID))

	_, err = svc.Get(context.Background(), resp.ID)
	assert.ErrorIs(t, err, organizationdomain.ErrNotFound)
}
