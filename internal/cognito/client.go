package cognito

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

// ErrCognitoThrottled marks errors returned when Cognito throttles requests.
var ErrCognitoThrottled = errors.New("cognito throttling")

// ErrCognitoNotAuthorized marks errors returned when Cognito rejects credentials.
var ErrCognitoNotAuthorized = errors.New("cognito not authorized")

// ErrCognitoUserExists marks errors returned when trying to create an existing user.
var ErrCognitoUserExists = errors.New("cognito user already exists")

var ErrCognitoUserNotFound = errors.New("cognito user not found")

// NewUser carries the attributes provisioned for an administrator account.
type NewUser struct {
	Email    string
	FullName string
	Phone    string
	Role     string
}

type CognitoClient struct {
	client *cognitoidentityprovider.Client
	poolID string
}

// NewClient creates a Cognito admin client for the given pool.
// The region is extracted from the pool ID (format: "region_poolid"). Static
// credentials are used when both keys are set; otherwise the default AWS
// credential chain applies.
func NewClient(poolID, accessKeyID, secretAccessKey string) (*CognitoClient, error) {
	region, err := regionFromPoolID(poolID)
	if err != nil {
		return nil, err
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if accessKeyID != "" && secretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &CognitoClient{
		client: cognitoidentityprovider.NewFromConfig(awsCfg),
		poolID: poolID,
	}, nil
}

// CreateUser creates a user in the pool with email_verified=true. Cognito
// sends its own invitation with a temporary password.
func (c *CognitoClient) CreateUser(ctx context.Context, user NewUser) error {
	_, err := c.client.AdminCreateUser(ctx, &cognitoidentityprovider.AdminCreateUserInput{
		UserPoolId:             aws.String(c.poolID),
		Username:               aws.String(user.Email),
		DesiredDeliveryMediums: []types.DeliveryMediumType{types.DeliveryMediumTypeEmail},
		UserAttributes:         userAttributes(user),
	})
	if err != nil {
		return mapCognitoError(err)
	}
	return nil
}

func (c *CognitoClient) DisableUser(ctx context.Context, email string) error {
	_, err := c.client.AdminDisableUser(ctx, &cognitoidentityprovider.AdminDisableUserInput{
		UserPoolId: aws.String(c.poolID),
		Username:   aws.String(email),
	})
	if err != nil {
		return mapCognitoError(err)
	}
	return nil
}

func (c *CognitoClient) EnableUser(ctx context.Context, email string) error {
	_, err := c.client.AdminEnableUser(ctx, &cognitoidentityprovider.AdminEnableUserInput{
		UserPoolId: aws.String(c.poolID),
		Username:   aws.String(email),
	})
	if err != nil {
		return mapCognitoError(err)
	}
	return nil
}

func userAttributes(user NewUser) []types.AttributeType {
	attrs := []types.AttributeType{
		{Name: aws.String("email"), Value: aws.String(user.Email)},
		{Name: aws.String("email_verified"), Value: aws.String("true")},
	}
	if user.FullName != "" {
		attrs = append(attrs, types.AttributeType{Name: aws.String("name"), Value: aws.String(user.FullName)})
	}
	if phone := NormalizePhone(user.Phone); phone != "" {
		attrs = append(attrs, types.AttributeType{Name: aws.String("phone_number"), Value: aws.String(phone)})
	}
	if user.Role != "" {
		attrs = append(attrs, types.AttributeType{Name: aws.String("custom:role"), Value: aws.String(user.Role)})
	}
	return attrs
}

func mapCognitoError(err error) error {
	var throttled *types.TooManyRequestsException
	if errors.As(err, &throttled) {
		return fmt.Errorf("%w: %v", ErrCognitoThrottled, err)
	}
	var notAuthorized *types.NotAuthorizedException
	if errors.As(err, &notAuthorized) {
		return fmt.Errorf("%w: %v", ErrCognitoNotAuthorized, err)
	}
	var userExists *types.UsernameExistsException
	if errors.As(err, &userExists) {
		return fmt.Errorf("%w: %v", ErrCognitoUserExists, err)
	}
	var notFound *types.UserNotFoundException
	if errors.As(err, &notFound) {
		return fmt.Errorf("%w: %v", ErrCognitoUserNotFound, err)
	}
	return err
}

func regionFromPoolID(poolID string) (string, error) {
	parts := strings.SplitN(poolID, "_", 2)
	if len(parts) < 2 || parts[0] == "" {
		return "", fmt.Errorf("invalid cognito pool id: %q", poolID)
	}
	return parts[0], nil
}
