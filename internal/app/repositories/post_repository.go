package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ladderhq/ladder/internal/app/models"
	"github.com/ladderhq/ladder/internal/db"
	"github.com/ladderhq/ladder/internal/pkg/apperrors"
)

const postSelectColumns = `
	p.id, p.community_id, p.author_id, p.title, p.content,
	p.like_count, p.comment_count, p.created_at,
	u.username, u.full_name
`

// PostRepository handles database operations for posts, likes, and comments
type PostRepository struct {
	db *pgxpool.Pool
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{db: db}
}

// Create inserts a post
func (r *PostRepository) Create(ctx context.Context, post *models.Post) (int64, error) {
	query := `
		INSERT INTO posts (community_id, author_id, title, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, post.CommunityID, post.AuthorID, post.Title, post.Content).
		Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("error creating post: %w", err)
	}

	return post.ID, nil
}

// GetByID retrieves a post with its author joined in
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM posts p
		LEFT JOIN users u ON p.author_id = u.id
		WHERE p.id = $1
	`, postSelectColumns)

	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving post: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("error retrieving post: %w", err)
		}
		return nil, apperrors.ErrPostNotFound
	}

	return scanPost(rows, nil)
}

// scanPost scans a joined post row; total may be nil
func scanPost(rows pgx.Rows, total *int64) (*models.Post, error) {
	var post models.Post
	var username, fullName *string

	dest := []interface{}{
		&post.ID, &post.CommunityID, &post.AuthorID, &post.Title, &post.Content,
		&post.LikeCount, &post.CommentCount, &post.CreatedAt,
		&username, &fullName,
	}
	if total != nil {
		dest = append(dest, total)
	}

	if err := rows.Scan(dest...); err != nil {
		return nil, fmt.Errorf("error scanning post row: %w", err)
	}

	if username != nil {
		post.Author = &models.User{ID: post.AuthorID, Username: *username}
		if fullName != nil {
			post.Author.FullName = *fullName
		}
	}

	return &post, nil
}

// GetFeed lists posts newest first. communityID scopes the feed to one
// community; nil returns the platform-wide feed.
func (r *PostRepository) GetFeed(ctx context.Context, communityID *int64, limit, offset int) ([]*models.Post, int64, error) {
	var query string
	var args []interface{}

	if communityID != nil {
		query = fmt.Sprintf(`
			SELECT %s, COUNT(*) OVER() AS total_count
			FROM posts p
			LEFT JOIN users u ON p.author_id = u.id
			WHERE p.community_id = $1
			ORDER BY p.created_at DESC
			LIMIT $2 OFFSET $3
		`, postSelectColumns)
		args = []interface{}{*communityID, limit, offset}
	} else {
		query = fmt.Sprintf(`
			SELECT %s, COUNT(*) OVER() AS total_count
			FROM posts p
			LEFT JOIN users u ON p.author_id = u.id
			ORDER BY p.created_at DESC
			LIMIT $1 OFFSET $2
		`, postSelectColumns)
		args = []interface{}{limit, offset}
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error retrieving posts: %w", err)
	}
	defer rows.Close()

	var posts []*models.Post
	var total int64
	for rows.Next() {
		post, err := scanPost(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating post rows: %w", err)
	}

	if posts == nil {
		posts = []*models.Post{}
	}

	return posts, total, nil
}

// Delete removes a post along with its likes and comments
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM post_likes WHERE post_id = $1`, id); err != nil {
			return fmt.Errorf("error deleting post likes: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM post_comments WHERE post_id = $1`, id); err != nil {
			return fmt.Errorf("error deleting post comments: %w", err)
		}

		result, err := tx.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("error deleting post: %w", err)
		}
		if result.RowsAffected() == 0 {
			return apperrors.ErrPostNotFound
		}
		return nil
	})
}

// ToggleLike flips the viewer's like on a post and keeps like_count in step
// within one transaction. Returns the resulting state.
func (r *PostRepository) ToggleLike(ctx context.Context, postID, userID int64) (bool, error) {
	var liked bool
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		result, err := tx.Exec(ctx, `
			INSERT INTO post_likes (post_id, user_id)
			VALUES ($1, $2)
			ON CONFLICT (post_id, user_id) DO NOTHING
		`, postID, userID)
		if err != nil {
			return fmt.Errorf("error adding like: %w", err)
		}

		if result.RowsAffected() > 0 {
			liked = true
			result, err = tx.Exec(ctx,
				`UPDATE posts SET like_count = like_count + 1 WHERE id = $1`, postID)
			if err != nil {
				return fmt.Errorf("error updating like count: %w", err)
			}
			if result.RowsAffected() == 0 {
				return apperrors.ErrPostNotFound
			}
			return nil
		}

		liked = false
		if _, err := tx.Exec(ctx,
			`DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID); err != nil {
			return fmt.Errorf("error removing like: %w", err)
		}
		if _, err := tx.Exec(ctx,
			`UPDATE posts SET like_count = GREATEST(like_count - 1, 0) WHERE id = $1`, postID); err != nil {
			return fmt.Errorf("error updating like count: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return liked, nil
}

// CreateComment adds a comment and bumps comment_count atomically
func (r *PostRepository) CreateComment(ctx context.Context, comment *models.PostComment) (int64, error) {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO post_comments (post_id, author_id, content)
			VALUES ($1, $2, $3)
			RETURNING id, created_at
		`, comment.PostID, comment.AuthorID, comment.Content).
			Scan(&comment.ID, &comment.CreatedAt)
		if err != nil {
			return fmt.Errorf("error creating comment: %w", err)
		}

		result, err := tx.Exec(ctx,
			`UPDATE posts SET comment_count = comment_count + 1 WHERE id = $1`, comment.PostID)
		if err != nil {
			return fmt.Errorf("error updating comment count: %w", err)
		}
		if result.RowsAffected() == 0 {
			return apperrors.ErrPostNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return comment.ID, nil
}

// GetComments lists a post's comments oldest first with authors joined in
func (r *PostRepository) GetComments(ctx context.Context, postID int64, limit, offset int) ([]*models.PostComment, int64, error) {
	query := `
		SELECT c.id, c.post_id, c.author_id, c.content, c.created_at,
		       u.username, u.full_name,
		       COUNT(*) OVER() AS total_count
		FROM post_comments c
		LEFT JOIN users u ON c.author_id = u.id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, postID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error retrieving comments: %w", err)
	}
	defer rows.Close()

	var comments []*models.PostComment
	var total int64
	for rows.Next() {
		var comment models.PostComment
		var username, fullName *string

		err := rows.Scan(
			&comment.ID, &comment.PostID, &comment.AuthorID, &comment.Content, &comment.CreatedAt,
			&username, &fullName,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning comment row: %w", err)
		}

		if username != nil {
			comment.Author = &models.User{ID: comment.AuthorID, Username: *username}
			if fullName != nil {
				comment.Author.FullName = *fullName
			}
		}

		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating comment rows: %w", err)
	}

	if comments == nil {
		comments = []*models.PostComment{}
	}

	return comments, total, nil
}

// DeleteComment removes a comment and drops comment_count atomically
func (r *PostRepository) DeleteComment(ctx context.Context, commentID int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var postID int64
		err := tx.QueryRow(ctx,
			`DELETE FROM post_comments WHERE id = $1 RETURNING post_id`, commentID).Scan(&postID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return apperrors.ErrResourceNotFound
			}
			return fmt.Errorf("error deleting comment: %w", err)
		}

		_, err = tx.Exec(ctx,
			`UPDATE posts SET comment_count = GREATEST(comment_count - 1, 0) WHERE id = $1`, postID)
		if err != nil {
			return fmt.Errorf("error updating comment count: %w", err)
		}
		return nil
	})
}

// GetCommentByID retrieves a single comment, used for ownership checks
func (r *PostRepository) GetCommentByID(ctx context.Context, commentID int64) (*models.PostComment, error) {
	var comment models.PostComment
	err := r.db.QueryRow(ctx,
		`SELECT id, post_id, author_id, content, created_at FROM post_comments WHERE id = $1`,
		commentID,
	).Scan(&comment.ID, &comment.PostID, &comment.AuthorID, &comment.Content, &comment.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving comment: %w", err)
	}
	return &comment, nil
}

// HasLiked reports whether the user liked the post
func (r *PostRepository) HasLiked(ctx context.Context, postID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM post_likes WHERE post_id = $1 AND user_id = $2)`,
		postID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking like existence: %w", err)
	}
	return exists, nil
}

// postSearchQuery ranks posts against a query term. Title matches weigh
// above content matches; equally ranked rows fall back to recency.
var postSearchQuery = fmt.Sprintf(`
	SELECT %s
	FROM posts p
	LEFT JOIN users u ON p.author_id = u.id,
	ts_rank(
		setweight(to_tsvector('english', p.title), 'A') ||
		setweight(to_tsvector('english', p.content), 'B'),
		plainto_tsquery('english', $1)
	) AS rank
	WHERE (
		setweight(to_tsvector('english', p.title), 'A') ||
		setweight(to_tsvector('english', p.content), 'B')
	) @@ plainto_tsquery('english', $1)
	ORDER BY rank DESC, p.created_at DESC
	LIMIT $2 OFFSET $3
`, postSelectColumns)

// Search ranks posts matching the term, best match first
func (r *PostRepository) Search(ctx context.Context, term string, limit, offset int) ([]*models.Post, error) {
	rows, err := r.db.Query(ctx, postSearchQuery, term, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("error searching posts: %w", err)
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows, nil)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	if posts == nil {
		posts = []*models.Post{}
	}

	return posts, nil
}
