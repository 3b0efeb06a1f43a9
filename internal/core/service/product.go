package service

import (
	"context"

	"github.com/rafaelleal24/warehouse/internal/core/domain"
	"github.com/rafaelleal24/warehouse/internal/core/dto"
	"github.com/rafaelleal24/warehouse/internal/core/logger"
	"github.com/rafaelleal24/warehouse/internal/core/port"
	"github.com/rafaelleal24/warehouse/internal/core/serviceerrors"
)

type ProductService struct {
	productRepository port.ProductPort
	events            port.EventPort
	txManager         port.TransactionManager
}

func NewProductService(productRepository port.ProductPort, events port.EventPort, txManager port.TransactionManager) *ProductService {
	return &ProductService{
		productRepository: productRepository,
		events:            events,
		txManager:         txManager,
	}
}

func (s *ProductService) ListProducts(ctx context.Context, request *dto.ListProductsRequest) (*domain.ProductPage, error) {
	pagination := request.Pagination()
	filter := request.Filter()

	total, err := s.productRepository.Count(ctx, filter)
	if err != nil {
		logger.Error(ctx, "product: count failed", err, filterAttributes(filter))
		return nil, err
	}

	products, err := s.productRepository.Find(ctx, filter, pagination.Offset(), int64(pagination.Limit))
	if err != nil {
		logger.Error(ctx, "product: find failed", err, filterAttributes(filter))
		return nil, err
	}
	if products == nil {
		products = []*domain.Product{}
	}

	return &domain.ProductPage{
		TotalProducts: total,
		Page:          pagination.Page,
		Limit:         pagination.Limit,
		TotalPages:    domain.TotalPages(total, pagination.Limit),
		Products:      products,
	}, nil
}

func (s *ProductService) GetByID(ctx context.Context, id domain.ID) (*domain.Product, error) {
	if !domain.ValidateID(string(id)) {
		return nil, serviceerrors.NewInvalidRequestError("Invalid product ID")
	}

	product, err := s.productRepository.GetByID(ctx, id)
	if err != nil {
		if serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			return nil, serviceerrors.NewNotFoundError("Product not found")
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, request *dto.CreateProductRequest) (*domain.Product, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	product := domain.NewProduct(request.Name, *request.Quantity, *request.Price)

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.productRepository.Create(txCtx, product); err != nil {
			return err
		}
		return s.events.Record(txCtx, domain.NewProductCreatedEvent(product))
	})
	if err != nil {
		logger.Error(ctx, "product: create failed", err, map[string]any{
			"name":     request.Name,
			"quantity": *request.Quantity,
			"price":    *request.Price,
		})
		return nil, err
	}

	logger.Info(ctx, "Product created", map[string]any{"product_id": product.ID})
	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id domain.ID, request *dto.UpdateProductRequest) (*domain.Product, error) {
	if !domain.ValidateID(string(id)) {
		return nil, serviceerrors.NewInvalidRequestError("Invalid product ID")
	}
	if err := request.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Product
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		product, err := s.productRepository.Update(txCtx, id, request.ToDomain())
		if err != nil {
			return err
		}
		updated = product
		return s.events.Record(txCtx, domain.NewProductUpdatedEvent(product))
	})
	if err != nil {
		if serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			return nil, serviceerrors.NewNotFoundError("Product not found")
		}
		logger.Error(ctx, "product: update failed", err, map[string]any{"product_id": id})
		return nil, err
	}

	logger.Info(ctx, "Product updated", map[string]any{"product_id": id})
	return updated, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id domain.ID) error {
	if !domain.ValidateID(string(id)) {
		return serviceerrors.NewInvalidRequestError("Invalid product ID")
	}

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.productRepository.Delete(txCtx, id); err != nil {
			return err
		}
		return s.events.Record(txCtx, domain.NewProductDeletedEvent([]domain.ID{id}, 1))
	})
	if err != nil {
		if serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			return serviceerrors.NewNotFoundError("Product not found")
		}
		logger.Error(ctx, "product: delete failed", err, map[string]any{"product_id": id})
		return err
	}

	logger.Info(ctx, "Product deleted", map[string]any{"product_id": id})
	return nil
}

// DeleteProducts succeeds when at least one of the requested products was
// removed; ids that match nothing are ignored.
func (s *ProductService) DeleteProducts(ctx context.Context, request *dto.DeleteProductsRequest) error {
	ids, err := request.ProductIDs()
	if err != nil {
		return err
	}

	var deleted int64
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		count, err := s.productRepository.DeleteMany(txCtx, ids)
		if err != nil {
			return err
		}
		if count == 0 {
			return serviceerrors.NewNotFoundError("No products found to delete")
		}
		deleted = count
		return s.events.Record(txCtx, domain.NewProductDeletedEvent(ids, count))
	})
	if err != nil {
		if !serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			logger.Error(ctx, "product: bulk delete failed", err, map[string]any{"requested": len(ids)})
		}
		return err
	}

	logger.Info(ctx, "Products deleted", map[string]any{
		"requested": len(ids),
		"deleted":   deleted,
	})
	return nil
}

func filterAttributes(filter domain.ProductFilter) map[string]any {
	attrs := map[string]any{"name": filter.NameContains}
	if filter.MinPrice != nil {
		attrs["min_price"] = *filter.MinPrice
	}
	if filter.MaxPrice != nil {
		attrs["max_price"] = *filter.MaxPrice
	}
	return attrs
}
