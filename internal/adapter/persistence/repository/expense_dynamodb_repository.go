package repository

import (
	"context"
	"errors"
	"time"

	"biashara_backoffice/internal/domain/entities"
	"biashara_backoffice/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const (
	defaultExpensesTableName = "expenses"
	expensesJobCardIDIndex   = "job_card_id-index"
)

type expenseItem struct {
	ID              string `dynamodbav:"id"`
	ExpenseNumber   string `dynamodbav:"expense_number"`
	CategoryID      string `dynamodbav:"category_id"`
	Description     string `dynamodbav:"description"`
	Amount          string `dynamodbav:"amount"`
	ExpenseDate     string `dynamodbav:"expense_date"`
	Vendor          string `dynamodbav:"vendor,omitempty"`
	ReferenceNumber string `dynamodbav:"reference_number,omitempty"`
	PaymentMethod   string `dynamodbav:"payment_method"`
	Status          string `dynamodbav:"status"`
	HasReceipt      bool   `dynamodbav:"has_receipt"`
	ReceiptURL      string `dynamodbav:"receipt_url,omitempty"`
	Notes           string `dynamodbav:"notes,omitempty"`
	RejectionReason string `dynamodbav:"rejection_reason,omitempty"`
	SubmittedByID   string `dynamodbav:"submitted_by_id"`
	JobCardID       string `dynamodbav:"job_card_id,omitempty"`
	CreatedAt       string `dynamodbav:"created_at"`
	UpdatedAt       string `dynamodbav:"updated_at"`
}

// ExpenseDynamoRepository persists Expense entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: job_card_id-index (PK: job_card_id)
//
// Monetary amounts are stored as decimal strings, never as numbers, so the
// exact representation round-trips untouched. Status writes are conditional
// on the stored status still matching what the caller read, which is the
// optimistic concurrency control the lifecycle services rely on.

type ExpenseDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IExpenseRepository = (*ExpenseDynamoRepository)(nil)

func NewExpenseDynamoRepository(ddb *dynamodb.Client) *ExpenseDynamoRepository {
	return &ExpenseDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("EXPENSES_TABLE", defaultExpensesTableName),
	}
}

func (r *ExpenseDynamoRepository) Create(ctx context.Context, e entities.Expense) (entities.Expense, error) {
	av, err := attributevalue.MarshalMap(toExpenseItem(e))
	if err != nil {
		return entities.Expense{}, err
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
		return entities.Expense{}, err
	}
	return e, nil
}

func (r *ExpenseDynamoRepository) GetByID(ctx context.Context, id string) (entities.Expense, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Expense{}, err
	}
	if len(out.Item) == 0 {
		return entities.Expense{}, nil
	}

	var it expenseItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Expense{}, err
	}
	return fromExpenseItem(it), nil
}

// UpdateFields rewrites the mutable attributes, conditional on the row still
// being editable (DRAFT or PENDING) so an edit cannot race a transition.
func (r *ExpenseDynamoRepository) UpdateFields(ctx context.Context, e entities.Expense) (entities.Expense, error) {
	it := toExpenseItem(e)
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: e.ID},
		},
		ConditionExpression: aws.String("attribute_exists(#id) AND #status IN (:draft, :pending)"),
		UpdateExpression: aws.String("SET #category_id = :category_id, #description = :description, " +
			"#amount = :amount, #expense_date = :expense_date, #vendor = :vendor, " +
			"#reference_number = :reference_number, #payment_method = :payment_method, " +
			"#has_receipt = :has_receipt, #receipt_url = :receipt_url, #notes = :notes, " +
			"#updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":               "id",
			"#status":           "status",
			"#category_id":      "category_id",
			"#description":      "description",
			"#amount":           "amount",
			"#expense_date":     "expense_date",
			"#vendor":           "vendor",
			"#reference_number": "reference_number",
			"#payment_method":   "payment_method",
			"#has_receipt":      "has_receipt",
			"#receipt_url":      "receipt_url",
			"#notes":            "notes",
			"#updated_at":       "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":draft":            &types.AttributeValueMemberS{Value: string(entities.ExpenseStatusDraft)},
			":pending":          &types.AttributeValueMemberS{Value: string(entities.ExpenseStatusPending)},
			":category_id":      &types.AttributeValueMemberS{Value: it.CategoryID},
			":description":      &types.AttributeValueMemberS{Value: it.Description},
			":amount":           &types.AttributeValueMemberS{Value: it.Amount},
			":expense_date":     &types.AttributeValueMemberS{Value: it.ExpenseDate},
			":vendor":           &types.AttributeValueMemberS{Value: it.Vendor},
			":reference_number": &types.AttributeValueMemberS{Value: it.ReferenceNumber},
			":payment_method":   &types.AttributeValueMemberS{Value: it.PaymentMethod},
			":has_receipt":      &types.AttributeValueMemberBOOL{Value: it.HasReceipt},
			":receipt_url":      &types.AttributeValueMemberS{Value: it.ReceiptURL},
			":notes":            &types.AttributeValueMemberS{Value: it.Notes},
			":updated_at":       &types.AttributeValueMemberS{Value: it.UpdatedAt},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Expense{}, nil
		}
		return entities.Expense{}, err
	}
	return unmarshalExpense(out.Attributes)
}

// TransitionStatus flips the status, conditional on the stored status still
// equaling from. A rejection reason is written (or cleared) together with
// the status so the reason is non-empty exactly when the status is REJECTED.
func (r *ExpenseDynamoRepository) TransitionStatus(ctx context.Context, id string, from, to entities.ExpenseStatus, rejectionReason string) (entities.Expense, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	updateExpr := "SET #status = :to, #updated_at = :updated_at"
	names := map[string]string{
		"#id":         "id",
		"#status":     "status",
		"#updated_at": "updated_at",
	}
	values := map[string]types.AttributeValue{
		":from":       &types.AttributeValueMemberS{Value: string(from)},
		":to":         &types.AttributeValueMemberS{Value: string(to)},
		":updated_at": &types.AttributeValueMemberS{Value: now},
	}
	if to == entities.ExpenseStatusRejected {
		updateExpr += ", #rejection_reason = :rejection_reason"
		names["#rejection_reason"] = "rejection_reason"
		values[":rejection_reason"] = &types.AttributeValueMemberS{Value: rejectionReason}
	} else {
		updateExpr += " REMOVE #rejection_reason"
		names["#rejection_reason"] = "rejection_reason"
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id) AND #status = :from"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Expense{}, nil
		}
		return entities.Expense{}, err
	}
	return unmarshalExpense(out.Attributes)
}

func (r *ExpenseDynamoRepository) ListByJobCardID(ctx context.Context, jobCardID string) ([]entities.Expense, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(expensesJobCardIDIndex),
		KeyConditionExpression: aws.String("#job_card_id = :job_card_id"),
		ExpressionAttributeNames: map[string]string{
			"#job_card_id": "job_card_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":job_card_id": &types.AttributeValueMemberS{Value: jobCardID},
		},
	})
	if err != nil {
		return nil, err
	}

	expenses := make([]entities.Expense, 0, len(out.Items))
	for _, item := range out.Items {
		var it expenseItem
		if err := attributevalue.UnmarshalMap(item, &it); err != nil {
			return nil, err
		}
		expenses = append(expenses, fromExpenseItem(it))
	}
	return expenses, nil
}

func unmarshalExpense(attrs map[string]types.AttributeValue) (entities.Expense, error) {
	if len(attrs) == 0 {
		return entities.Expense{}, nil
	}
	var it expenseItem
	if err := attributevalue.UnmarshalMap(attrs, &it); err != nil {
		return entities.Expense{}, err
	}
	return fromExpenseItem(it), nil
}

func toExpenseItem(e entities.Expense) expenseItem {
	return expenseItem{
		ID:              e.ID,
		ExpenseNumber:   e.ExpenseNumber,
		CategoryID:      e.CategoryID,
		Description:     e.Description,
		Amount:          e.Amount.String(),
		ExpenseDate:     e.ExpenseDate.UTC().Format(time.RFC3339Nano),
		Vendor:          e.Vendor,
		ReferenceNumber: e.ReferenceNumber,
		PaymentMethod:   string(e.PaymentMethod),
		Status:          string(e.Status),
		HasReceipt:      e.HasReceipt,
		ReceiptURL:      e.ReceiptURL,
		Notes:           e.Notes,
		RejectionReason: e.RejectionReason,
		SubmittedByID:   e.SubmittedByID,
		JobCardID:       e.JobCardID,
		CreatedAt:       e.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:       e.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromExpenseItem(it expenseItem) entities.Expense {
	amount, _ := decimal.NewFromString(it.Amount)
	expenseDate, _ := time.Parse(time.RFC3339Nano, it.ExpenseDate)
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return entities.Expense{
		ID:              it.ID,
		ExpenseNumber:   it.ExpenseNumber,
		CategoryID:      it.CategoryID,
		Description:     it.Description,
		Amount:          amount,
		ExpenseDate:     expenseDate,
		Vendor:          it.Vendor,
		ReferenceNumber: it.ReferenceNumber,
		PaymentMethod:   entities.PaymentMethod(it.PaymentMethod),
		Status:          entities.ExpenseStatus(it.Status),
		HasReceipt:      it.HasReceipt,
		ReceiptURL:      it.ReceiptURL,
		Notes:           it.Notes,
		RejectionReason: it.RejectionReason,
		SubmittedByID:   it.SubmittedByID,
		JobCardID:       it.JobCardID,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}
}
