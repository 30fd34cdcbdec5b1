package handlers

import (
	"time"

	"blog-platform-api/helper"
	"blog-platform-api/middleware"
	"blog-platform-api/models"
	"blog-platform-api/services"

	"github.com/graphql-go/graphql"
)

// NewSchema builds the executable schema. Resolvers read the request identity
// from context, validate input, and delegate to the service layer; every
// authorization decision happens behind the services, never here.
func NewSchema(
	auth services.AuthService,
	posts services.PostService,
	comments services.CommentService,
	users services.UserService,
	h *helper.HTTPHelper,
) (graphql.Schema, error) {
	b := &schemaBuilder{auth: auth, posts: posts, comments: comments, users: users, helper: h}
	b.buildTypes()

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    b.queryType(),
		Mutation: b.mutationType(),
	})
}

type schemaBuilder struct {
	auth     services.AuthService
	posts    services.PostService
	comments services.CommentService
	users    services.UserService
	helper   *helper.HTTPHelper

	userType        *graphql.Object
	authPayloadType *graphql.Object
	commentType     *graphql.Object
	postType        *graphql.Object
}

func (b *schemaBuilder) buildTypes() {
	b.userType = graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return userFromSource(p.Source).ID, nil
				},
			},
			"email": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return userFromSource(p.Source).Email, nil
				},
			},
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return userFromSource(p.Source).Name, nil
				},
			},
			"avatar": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user := userFromSource(p.Source)
					if user.Avatar == "" {
						return nil, nil
					}
					return user.Avatar, nil
				},
			},
			"role": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return string(userFromSource(p.Source).Role), nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return userFromSource(p.Source).CreatedAt.Format(time.RFC3339), nil
				},
			},
		},
	})

	b.authPayloadType = graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthPayload",
		Fields: graphql.Fields{
			"token": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					payload, _ := p.Source.(*models.AuthPayload)
					return payload.Token, nil
				},
			},
			"user": &graphql.Field{
				Type: graphql.NewNonNull(b.userType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					payload, _ := p.Source.(*models.AuthPayload)
					return payload.User, nil
				},
			},
		},
	})

	b.commentType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Comment",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return commentFromSource(p.Source).ID, nil
				},
			},
			"postId": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return commentFromSource(p.Source).PostID, nil
				},
			},
			"content": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return commentFromSource(p.Source).Content, nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return commentFromSource(p.Source).CreatedAt.Format(time.RFC3339), nil
				},
			},
			"author": &graphql.Field{
				Type: graphql.NewNonNull(b.userType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.resolveAuthor(commentFromSource(p.Source).AuthorID)
				},
			},
		},
	})

	b.postType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Post",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return postFromSource(p.Source).ID, nil
				},
			},
			"title": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return postFromSource(p.Source).Title, nil
				},
			},
			"content": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return postFromSource(p.Source).Content, nil
				},
			},
			"excerpt": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					post := postFromSource(p.Source)
					if post.Excerpt == "" {
						return nil, nil
					}
					return post.Excerpt, nil
				},
			},
			"published": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return postFromSource(p.Source).Published, nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return postFromSource(p.Source).CreatedAt.Format(time.RFC3339), nil
				},
			},
			"updatedAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return postFromSource(p.Source).UpdatedAt.Format(time.RFC3339), nil
				},
			},
			"author": &graphql.Field{
				Type: graphql.NewNonNull(b.userType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.resolveAuthor(postFromSource(p.Source).AuthorID)
				},
			},
			"comments": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.commentType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.comments.ListByPost(postFromSource(p.Source).ID)
				},
			},
			"commentsCount": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					count, err := b.comments.CountByPost(postFromSource(p.Source).ID)
					if err != nil {
						return nil, err
					}
					return int(count), nil
				},
			},
		},
	})
}

func (b *schemaBuilder) queryType() *graphql.Object {
	currentUser := func(p graphql.ResolveParams) (interface{}, error) {
		identity := middleware.IdentityFromContext(p.Context)
		if identity.Anonymous {
			return nil, nil
		}
		user, err := b.auth.GetUserByID(identity.UserID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, nil
		}
		return *user, nil
	}

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			// The original server exposed "me"; the client queries
			// "currentUser". Both resolve the same way.
			"me": &graphql.Field{
				Type:    b.userType,
				Resolve: currentUser,
			},
			"currentUser": &graphql.Field{
				Type:    b.userType,
				Resolve: currentUser,
			},
			"posts": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.postType))),
				Args: graphql.FieldConfigArgument{
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int},
					"offset": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					params := models.PostListParams{
						Limit:  intArg(p, "limit"),
						Offset: intArg(p, "offset"),
					}
					return b.posts.ListPosts(params)
				},
			},
			"post": &graphql.Field{
				Type: b.postType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					identity := middleware.IdentityFromContext(p.Context)
					return b.posts.GetPost(identity, stringArg(p, "id"))
				},
			},
			"myPosts": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.postType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					identity := middleware.IdentityFromContext(p.Context)
					return b.posts.MyPosts(identity)
				},
			},
			"users": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.userType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					identity := middleware.IdentityFromContext(p.Context)
					return b.users.ListUsers(identity)
				},
			},
		},
	})
}

func (b *schemaBuilder) mutationType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"login": &graphql.Field{
				Type: graphql.NewNonNull(b.authPayloadType),
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input := models.LoginInput{
						Email:    stringArg(p, "email"),
						Password: stringArg(p, "password"),
					}
					if err := b.helper.ValidateStruct(input); err != nil {
						return nil, err
					}
					return b.auth.Login(input)
				},
			},
			"register": &graphql.Field{
				Type: graphql.NewNonNull(b.authPayloadType),
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"name":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input := models.RegisterInput{
						Email:    stringArg(p, "email"),
						Password: stringArg(p, "password"),
						Name:     stringArg(p, "name"),
					}
					if err := b.helper.ValidateStruct(input); err != nil {
						return nil, err
					}
					return b.auth.Register(input)
				},
			},
			// Stateless by design: the client discards its token, the server
			// tracks nothing.
			"logout": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return true, nil
				},
			},
			"createPost": &graphql.Field{
				Type: graphql.NewNonNull(b.postType),
				Args: graphql.FieldConfigArgument{
					"title":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"content":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"excerpt":   &graphql.ArgumentConfig{Type: graphql.String},
					"published": &graphql.ArgumentConfig{Type: graphql.Boolean},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					identity := middleware.IdentityFromContext(p.Context)
					input := models.CreatePostInput{
						Title:   stringArg(p, "title"),
						Content: stringArg(p, "content"),
					}
					if excerpt := optionalStringArg(p, "excerpt"); excerpt != nil {
						input.Excerpt = *excerpt
					}
					if published := optionalBoolArg(p, "published"); published != nil {
						input.Published = *published
					}
					if err := b.helper.ValidateStruct(input); err != nil {
						return nil, err
					}
					return b.posts.CreatePost(identity, input)
				},
			},
			"updatePost": &graphql.Field{
				Type: graphql.NewNonNull(b.postType),
				Args: graphql.FieldConfigArgument{
					"id":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"title":     &graphql.ArgumentConfig{Type: graphql.String},
					"content":   &graphql.ArgumentConfig{Type: graphql.String},
					"excerpt":   &graphql.ArgumentConfig{Type: graphql.String},
					"published": &graphql.ArgumentConfig{Type: graphql.Boolean},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					identity := middleware.IdentityFromContext(p.Context)
					input := models.UpdatePostInput{
						Title:     optionalStringArg(p, "title"),
						Content:   optionalStringArg(p, "content"),
						Excerpt:   optionalStringArg(p, "excerpt"),
						Published: optionalBoolArg(p, "published"),
					}
					if err := b.helper.ValidateStruct(input); err != nil {
						return nil, err
					}
					return b.posts.UpdatePost(identity, stringArg(p, "id"), input)
				},
			},
			"deletePost": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					identity := middleware.IdentityFromContext(p.Context)
					if err := b.posts.DeletePost(identity, stringArg(p, "id")); err != nil {
						return nil, err
					}
					return true, nil
				},
			},
			"createComment": &graphql.Field{
				Type: graphql.NewNonNull(b.commentType),
				Args: graphql.FieldConfigArgument{
					"postId":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"content": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					identity := middleware.IdentityFromContext(p.Context)
					input := models.CreateCommentInput{
						PostID:  stringArg(p, "postId"),
						Content: stringArg(p, "content"),
					}
					if err := b.helper.ValidateStruct(input); err != nil {
						return nil, err
					}
					return b.comments.CreateComment(identity, input)
				},
			},
			"deleteComment": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					identity := middleware.IdentityFromContext(p.Context)
					if err := b.comments.DeleteComment(identity, stringArg(p, "id")); err != nil {
						return nil, err
					}
					return true, nil
				},
			},
			"updateUser": &graphql.Field{
				Type: graphql.NewNonNull(b.userType),
				Args: graphql.FieldConfigArgument{
					"id":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"name":   &graphql.ArgumentConfig{Type: graphql.String},
					"avatar": &graphql.ArgumentConfig{Type: graphql.String},
					"role":   &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					identity := middleware.IdentityFromContext(p.Context)
					input := models.UpdateUserInput{
						Name:   optionalStringArg(p, "name"),
						Avatar: optionalStringArg(p, "avatar"),
						Role:   optionalStringArg(p, "role"),
					}
					if err := b.helper.ValidateStruct(input); err != nil {
						return nil, err
					}
					return b.users.UpdateUser(identity, stringArg(p, "id"), input)
				},
			},
			"deleteUser": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					identity := middleware.IdentityFromContext(p.Context)
					if err := b.users.DeleteUser(identity, stringArg(p, "id")); err != nil {
						return nil, err
					}
					return true, nil
				},
			},
		},
	})
}

func (b *schemaBuilder) resolveAuthor(authorID string) (interface{}, error) {
	user, err := b.users.GetUser(authorID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &models.NotFoundError{Resource: "user", ID: authorID}
	}
	return *user, nil
}

func userFromSource(source interface{}) models.User {
	switch v := source.(type) {
	case models.User:
		return v
	case *models.User:
		return *v
	}
	return models.User{}
}

func postFromSource(source interface{}) models.Post {
	switch v := source.(type) {
	case models.Post:
		return v
	case *models.Post:
		return *v
	}
	return models.Post{}
}

func commentFromSource(source interface{}) models.Comment {
	switch v := source.(type) {
	case models.Comment:
		return v
	case *models.Comment:
		return *v
	}
	return models.Comment{}
}

func stringArg(p graphql.ResolveParams, name string) string {
	if value, ok := p.Args[name].(string); ok {
		return value
	}
	return ""
}

func optionalStringArg(p graphql.ResolveParams, name string) *string {
	if value, ok := p.Args[name].(string); ok {
		return &value
	}
	return nil
}

func optionalBoolArg(p graphql.ResolveParams, name string) *bool {
	if value, ok := p.Args[name].(bool); ok {
		return &value
	}
	return nil
}

func intArg(p graphql.ResolveParams, name string) int {
	if value, ok := p.Args[name].(int); ok {
		return value
	}
	return 0
}
