package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/libraops/library-service/internal/domain"
)

type BookRepository struct {
	client    *dynamodb.Client
	tableName string
}

func NewBookRepository(client *dynamodb.Client, tableName string) *BookRepository {
	return &BookRepository{
		client:    client,
		tableName: tableName,
	}
}

func (r *BookRepository) bookKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"book_id": &types.AttributeValueMemberS{Value: id},
	}
}

func (r *BookRepository) Create(ctx context.Context, book *domain.Book) error {
	av, err := attributevalue.MarshalMap(book)
	if err != nil {
		return fmt.Errorf("failed to marshal book: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put item: %w", err)
	}

	return nil
}

func (r *BookRepository) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       r.bookKey(id),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	if result.Item == nil {
		return nil, ErrBookNotFound
	}

	var book domain.Book
	if err := attributevalue.UnmarshalMap(result.Item, &book); err != nil {
		return nil, fmt.Errorf("failed to unmarshal book: %w", err)
	}

	return &book, nil
}

// List scans the whole books table. The collection is small by design, so
// a paginated scan is fine; ordering is applied by the service layer.
func (r *BookRepository) List(ctx context.Context) ([]domain.Book, error) {
	return r.scan(ctx, nil)
}

// ListByCategory filters on the lower-cased category shadow attribute,
// giving a case-insensitive substring match.
func (r *BookRepository) ListByCategory(ctx context.Context, category string) ([]domain.Book, error) {
	filter := expression.Contains(
		expression.Name("category_lc"),
		strings.ToLower(category),
	)
	return r.scan(ctx, &filter)
}

// ListAfterYear returns books published strictly after year.
func (r *BookRepository) ListAfterYear(ctx context.Context, year int) ([]domain.Book, error) {
	filter := expression.GreaterThan(
		expression.Name("published_year"),
		expression.Value(year),
	)
	return r.scan(ctx, &filter)
}

func (r *BookRepository) scan(ctx context.Context, filter *expression.ConditionBuilder) ([]domain.Book, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	}

	if filter != nil {
		expr, err := expression.NewBuilder().WithFilter(*filter).Build()
		if err != nil {
			return nil, fmt.Errorf("failed to build filter expression: %w", err)
		}
		input.FilterExpression = expr.Filter()
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
	}

	var books []domain.Book
	paginator := dynamodb.NewScanPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan books: %w", err)
		}

		var pageBooks []domain.Book
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &pageBooks); err != nil {
			return nil, fmt.Errorf("failed to unmarshal books: %w", err)
		}
		books = append(books, pageBooks...)
	}

	return books, nil
}

// AdjustCopies applies delta to available_copies as a single conditional
// update, so concurrent adjustments cannot lose writes or drive the count
// below zero. Returns the updated book and the count observed before the
// update.
func (r *BookRepository) AdjustCopies(ctx context.Context, id string, delta int) (updated *domain.Book, previous int, err error) {
	book, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	previous = book.AvailableCopies

	update := expression.Set(
		expression.Name("available_copies"),
		expression.Plus(
			expression.Name("available_copies"),
			expression.Value(delta),
		),
	).Set(
		expression.Name("updated_at"),
		expression.Value(time.Now()),
	)

	// The floor condition is what actually enforces the invariant; the
	// read above only supplies the count for the error message.
	condition := expression.GreaterThanEqual(
		expression.Name("available_copies"),
		expression.Value(-delta),
	)

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(condition).
		Build()
	if err != nil {
		return nil, previous, err
	}

	result, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       r.bookKey(id),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, previous, ErrInsufficientCopies
		}
		return nil, previous, fmt.Errorf("failed to adjust copies: %w", err)
	}

	var updatedBook domain.Book
	if err := attributevalue.UnmarshalMap(result.Attributes, &updatedBook); err != nil {
		return nil, previous, fmt.Errorf("failed to unmarshal book: %w", err)
	}

	return &updatedBook, previous, nil
}

// UpdateCategory replaces only the category (and its shadow) on an
// existing book.
func (r *BookRepository) UpdateCategory(ctx context.Context, id, category string) (*domain.Book, error) {
	update := expression.Set(
		expression.Name("category"),
		expression.Value(category),
	).Set(
		expression.Name("category_lc"),
		expression.Value(strings.ToLower(category)),
	).Set(
		expression.Name("updated_at"),
		expression.Value(time.Now()),
	)

	condition := expression.AttributeExists(expression.Name("book_id"))

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(condition).
		Build()
	if err != nil {
		return nil, err
	}

	result, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       r.bookKey(id),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	var book domain.Book
	if err := attributevalue.UnmarshalMap(result.Attributes, &book); err != nil {
		return nil, fmt.Errorf("failed to unmarshal book: %w", err)
	}

	return &book, nil
}

// Update writes a fully merged book record over the existing item.
func (r *BookRepository) Update(ctx context.Context, book *domain.Book) error {
	av, err := attributevalue.MarshalMap(book)
	if err != nil {
		return fmt.Errorf("failed to marshal book: %w", err)
	}

	condition := expression.AttributeExists(expression.Name("book_id"))
	expr, err := expression.NewBuilder().WithCondition(condition).Build()
	if err != nil {
		return err
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(r.tableName),
		Item:                      av,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrBookNotFound
		}
		return fmt.Errorf("failed to update book: %w", err)
	}

	return nil
}

// DeleteAll removes every book. Used by the seed tool, never by the API.
func (r *BookRepository) DeleteAll(ctx context.Context) error {
	books, err := r.List(ctx)
	if err != nil {
		return err
	}

	for _, book := range books {
		_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName: aws.String(r.tableName),
			Key:       r.bookKey(book.ID),
		})
		if err != nil {
			return fmt.Errorf("failed to delete book %s: %w", book.ID, err)
		}
	}

	return nil
}

// Delete removes the book only while its copy count is zero and returns
// the snapshot taken just before removal.
func (r *BookRepository) Delete(ctx context.Context, id string) (*domain.Book, error) {
	book, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	condition := expression.Equal(
		expression.Name("available_copies"),
		expression.Value(0),
	)

	expr, err := expression.NewBuilder().WithCondition(condition).Build()
	if err != nil {
		return nil, err
	}

	_, err = r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       r.bookKey(id),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return book, ErrBookHasCopies
		}
		return nil, fmt.Errorf("failed to delete book: %w", err)
	}

	return book, nil
}
