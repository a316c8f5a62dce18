package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"biashara_backoffice/internal/domain/entities"
	"biashara_backoffice/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const defaultSalesTableName = "sales"

type saleItemAttr struct {
	ID         string `dynamodbav:"id"`
	ProductID  string `dynamodbav:"product_id"`
	Quantity   int    `dynamodbav:"quantity"`
	UnitPrice  string `dynamodbav:"unit_price"`
	TotalPrice string `dynamodbav:"total_price"`
}

type installmentAttr struct {
	ID     string `dynamodbav:"id"`
	Amount string `dynamodbav:"amount"`
	PaidAt string `dynamodbav:"paid_at"`
	Status string `dynamodbav:"status"`
	Notes  string `dynamodbav:"notes,omitempty"`
}

type saleItem struct {
	ID                             string            `dynamodbav:"id"`
	SaleNumber                     string            `dynamodbav:"sale_number"`
	ClientID                       string            `dynamodbav:"client_id"`
	SaleDate                       string            `dynamodbav:"sale_date"`
	Status                         string            `dynamodbav:"status"`
	Items                          []saleItemAttr    `dynamodbav:"items"`
	Installments                   []installmentAttr `dynamodbav:"installments,omitempty"`
	AgreedMonthlyInstallmentAmount string            `dynamodbav:"agreed_monthly_installment_amount,omitempty"`
	RequestedPaymentDateExtension  bool              `dynamodbav:"requested_payment_date_extension"`
	PaymentExtensionDueDate        string            `dynamodbav:"payment_extension_due_date,omitempty"`
	Notes                          string            `dynamodbav:"notes,omitempty"`
	CreatedAt                      string            `dynamodbav:"created_at"`
	UpdatedAt                      string            `dynamodbav:"updated_at"`
	Version                        int               `dynamodbav:"version"`
}

// SaleDynamoRepository persists the Sale aggregate in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// The whole aggregate (sale, items, installments) is one item; every save
// rewrites it conditionally on the stored version still matching the one the
// caller read, then bumps it. Losing writers observe a conditional-check
// failure, surfaced to callers as an empty result.

type SaleDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ISaleRepository = (*SaleDynamoRepository)(nil)

func NewSaleDynamoRepository(ddb *dynamodb.Client) *SaleDynamoRepository {
	return &SaleDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("SALES_TABLE", defaultSalesTableName),
	}
}

func (r *SaleDynamoRepository) Create(ctx context.Context, s entities.Sale) (entities.Sale, error) {
	s.Version = 1
	av, err := attributevalue.MarshalMap(toSaleItem(s))
	if err != nil {
		return entities.Sale{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Sale{}, err
	}
	return s, nil
}

func (r *SaleDynamoRepository) GetByID(ctx context.Context, id string) (entities.Sale, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Sale{}, err
	}
	if len(out.Item) == 0 {
		return entities.Sale{}, nil
	}

	var it saleItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Sale{}, err
	}
	return fromSaleItem(it), nil
}

func (r *SaleDynamoRepository) Save(ctx context.Context, s entities.Sale) (entities.Sale, error) {
	expected := s.Version
	s.Version = expected + 1

	av, err := attributevalue.MarshalMap(toSaleItem(s))
	if err != nil {
		return entities.Sale{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id) AND #version = :expected"),
		ExpressionAttributeNames: map[string]string{
			"#id":      "id",
			"#version": "version",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: strconv.Itoa(expected)},
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Sale{}, nil
		}
		return entities.Sale{}, err
	}
	return s, nil
}

func toSaleItem(s entities.Sale) saleItem {
	items := make([]saleItemAttr, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, saleItemAttr{
			ID:         it.ID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice.String(),
			TotalPrice: it.TotalPrice.String(),
		})
	}
	installments := make([]installmentAttr, 0, len(s.Installments))
	for _, in := range s.Installments {
		installments = append(installments, installmentAttr{
			ID:     in.ID,
			Amount: in.Amount.String(),
			PaidAt: in.PaidAt.UTC().Format(time.RFC3339Nano),
			Status: string(in.Status),
			Notes:  in.Notes,
		})
	}

	it := saleItem{
		ID:                            s.ID,
		SaleNumber:                    s.SaleNumber,
		ClientID:                      s.ClientID,
		SaleDate:                      s.SaleDate.UTC().Format(time.RFC3339Nano),
		Status:                        string(s.Status),
		Items:                         items,
		Installments:                  installments,
		RequestedPaymentDateExtension: s.RequestedPaymentDateExtension,
		Notes:                         s.Notes,
		CreatedAt:                     s.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:                     s.UpdatedAt.UTC().Format(time.RFC3339Nano),
		Version:                       s.Version,
	}
	if s.AgreedMonthlyInstallmentAmount != nil {
		it.AgreedMonthlyInstallmentAmount = s.AgreedMonthlyInstallmentAmount.String()
	}
	if s.PaymentExtensionDueDate != nil {
		it.PaymentExtensionDueDate = s.PaymentExtensionDueDate.UTC().Format(time.RFC3339Nano)
	}
	return it
}

func fromSaleItem(it saleItem) entities.Sale {
	items := make([]entities.SaleItem, 0, len(it.Items))
	for _, a := range it.Items {
		unitPrice, _ := decimal.NewFromString(a.UnitPrice)
		totalPrice, _ := decimal.NewFromString(a.TotalPrice)
		items = append(items, entities.SaleItem{
			ID:         a.ID,
			ProductID:  a.ProductID,
			Quantity:   a.Quantity,
			UnitPrice:  unitPrice,
			TotalPrice: totalPrice,
		})
	}
	installments := make([]entities.Installment, 0, len(it.Installments))
	for _, a := range it.Installments {
		amount, _ := decimal.NewFromString(a.Amount)
		paidAt, _ := time.Parse(time.RFC3339Nano, a.PaidAt)
		installments = append(installments, entities.Installment{
			ID:     a.ID,
			Amount: amount,
			PaidAt: paidAt,
			Status: entities.InstallmentStatus(a.Status),
			Notes:  a.Notes,
		})
	}

	saleDate, _ := time.Parse(time.RFC3339Nano, it.SaleDate)
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	s := entities.Sale{
		ID:                            it.ID,
		SaleNumber:                    it.SaleNumber,
		ClientID:                      it.ClientID,
		SaleDate:                      saleDate,
		Status:                        entities.SaleStatus(it.Status),
		Items:                         items,
		Installments:                  installments,
		RequestedPaymentDateExtension: it.RequestedPaymentDateExtension,
		Notes:                         it.Notes,
		CreatedAt:                     createdAt,
		UpdatedAt:                     updatedAt,
		Version:                       it.Version,
	}
	if it.AgreedMonthlyInstallmentAmount != "" {
		if monthly, err := decimal.NewFromString(it.AgreedMonthlyInstallmentAmount); err == nil {
			s.AgreedMonthlyInstallmentAmount = &monthly
		}
	}
	if it.PaymentExtensionDueDate != "" {
		if due, err := time.Parse(time.RFC3339Nano, it.PaymentExtensionDueDate); err == nil {
			s.PaymentExtensionDueDate = &due
		}
	}
	return s
}
