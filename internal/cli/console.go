package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/blogcore/internal/result"
	"github.com/dmitrijs2005/blogcore/internal/server/managers"
	"github.com/dmitrijs2005/blogcore/internal/server/models"
)

// Console is an interactive session over the managers. A session may be
// anonymous; posting requires a logged-in author, comments do not.
type Console struct {
	managers *managers.Set
	reader   *bufio.Reader
	out      io.Writer
	user     *models.User
}

func NewConsole(m *managers.Set, in io.Reader, out io.Writer) *Console {
	return &Console{managers: m, reader: bufio.NewReader(in), out: out}
}

// Run blocks until the user exits or input ends.
func (c *Console) Run(ctx context.Context) {
	fmt.Fprintln(c.out, "Blog console (type 'help' for commands)")
	runREPL(ctx, c, c.status, c.reader, c.out)
}

func (c *Console) status() string {
	if c.user == nil {
		return ""
	}
	return "(" + c.user.Username + ") "
}

func (c *Console) isLoggedIn() bool {
	return c.user != nil
}

func (c *Console) report(r result.Result) {
	if r.Success {
		fmt.Fprintln(c.out, r.Message)
		return
	}
	fmt.Fprintln(c.out, "Failed:", r.Message)
}

func (c *Console) ask(fields ...prompted) error {
	for _, f := range fields {
		v, err := GetSimpleText(c.reader, f.prompt, c.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}
	return nil
}

type prompted struct {
	prompt string
	dst    *string
}

func (c *Console) Register(ctx context.Context) error {
	u := &models.User{}
	if err := c.ask(
		prompted{"First name", &u.FirstName},
		prompted{"Last name", &u.LastName},
		prompted{"Email", &u.Email},
		prompted{"Username", &u.Username},
		prompted{"Profile picture URL (optional)", &u.ProfilePictureURL},
	); err != nil {
		return err
	}

	pw, err := GetPassword(c.reader, c.out)
	if err != nil {
		return err
	}
	u.PasswordHash = pw

	res, err := c.managers.Users.Add(ctx, u)
	if err != nil {
		return err
	}
	c.report(res)
	return nil
}

func (c *Console) Login(ctx context.Context) error {
	username, err := GetSimpleText(c.reader, "Username", c.out)
	if err != nil {
		return err
	}
	pw, err := GetPassword(c.reader, c.out)
	if err != nil {
		return err
	}

	auth, err := c.managers.Users.AuthenticateUser(ctx, username, pw)
	if err != nil {
		return err
	}
	if !auth.Success || !auth.Data {
		c.report(auth.Result)
		return nil
	}

	u, err := c.managers.Users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if !u.Success {
		c.report(u.Result)
		return nil
	}

	c.user = u.Data
	fmt.Fprintf(c.out, "Logged in as %s\n", c.user.Username)
	return nil
}

func (c *Console) Logout(ctx context.Context) error {
	c.user = nil
	fmt.Fprintln(c.out, "Logged out")
	return nil
}

func (c *Console) Users(ctx context.Context) error {
	res, err := c.managers.Users.GetAll(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tNAME\tEMAIL")
	for _, u := range res.Data {
		fmt.Fprintf(tw, "%d\t%s\t%s %s\t%s\n", u.ID, u.Username, u.FirstName, u.LastName, u.Email)
	}
	return tw.Flush()
}

func (c *Console) Categories(ctx context.Context) error {
	res, err := c.managers.Categories.GetAll(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION")
	for _, cat := range res.Data {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", cat.ID, cat.Name, cat.Description)
	}
	return tw.Flush()
}

func (c *Console) AddCategory(ctx context.Context) error {
	cat := &models.Category{}
	if err := c.ask(
		prompted{"Name", &cat.Name},
		prompted{"Description", &cat.Description},
	); err != nil {
		return err
	}

	res, err := c.managers.Categories.Add(ctx, cat)
	if err != nil {
		return err
	}
	c.report(res)
	return nil
}

func (c *Console) DeleteCategory(ctx context.Context, id int64) error {
	res, err := c.managers.Categories.Delete(ctx, id)
	if err != nil {
		return err
	}
	c.report(res)
	return nil
}

// Posts lists all posts, or the posts of one category when categoryID > 0.
func (c *Console) Posts(ctx context.Context, categoryID int64) error {
	var (
		res result.DataResult[[]*models.Post]
		err error
	)
	if categoryID > 0 {
		res, err = c.managers.Posts.GetPostsByCategoryID(ctx, categoryID)
	} else {
		res, err = c.managers.Posts.GetAll(ctx)
	}
	if err != nil {
		return err
	}
	if !res.Success {
		c.report(res.Result)
		return nil
	}

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tAUTHOR\tPUBLISHED")
	for _, p := range res.Data {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s\n", p.ID, p.Title, p.CategoryID, p.UserID, p.PublishDate.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

func (c *Console) AddPost(ctx context.Context) error {
	if !c.isLoggedIn() {
		fmt.Fprintln(c.out, "Log in to publish posts")
		return nil
	}

	p := &models.Post{UserID: c.user.ID}
	if err := c.ask(prompted{"Title", &p.Title}); err != nil {
		return err
	}
	content, err := GetMultiline(c.reader, "Content", c.out)
	if err != nil {
		return err
	}
	p.Content = content

	if p.CategoryID, err = GetID(c.reader, "Category id", c.out); err != nil {
		return err
	}
	if err := c.ask(prompted{"Image URL (optional)", &p.ImageURL}); err != nil {
		return err
	}

	res, err := c.managers.Posts.Add(ctx, p)
	if err != nil {
		return err
	}
	c.report(res)
	return nil
}

func (c *Console) DeletePost(ctx context.Context, id int64) error {
	res, err := c.managers.Posts.Delete(ctx, id)
	if err != nil {
		return err
	}
	c.report(res)
	return nil
}

func (c *Console) Comments(ctx context.Context, postID int64) error {
	res, err := c.managers.Comments.GetCommentsByPostID(ctx, postID)
	if err != nil {
		return err
	}
	if !res.Success {
		c.report(res.Result)
		return nil
	}

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tAUTHOR\tDATE\tTEXT")
	for _, cm := range res.Data {
		author := "anonymous"
		if cm.UserID != nil {
			author = fmt.Sprint(*cm.UserID)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", cm.ID, author, cm.CommentDate.Format("2006-01-02 15:04"), cm.Text)
	}
	return tw.Flush()
}

// AddComment comments on postID as the logged-in user, or anonymously.
func (c *Console) AddComment(ctx context.Context, postID int64) error {
	cm := &models.Comment{PostID: postID}
	if c.user != nil {
		id := c.user.ID
		cm.UserID = &id
	}
	if err := c.ask(prompted{"Comment", &cm.Text}); err != nil {
		return err
	}

	res, err := c.managers.Comments.Add(ctx, cm)
	if err != nil {
		return err
	}
	c.report(res)
	return nil
}
