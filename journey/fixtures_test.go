package journey

import "strings"

const pageHeader = `<!DOCTYPE html>
<html lang="en">
<head>
  <title>Bookshelf - Java on Google Cloud Platform</title>
  <link rel="stylesheet" href="//maxcdn.bootstrapcdn.com/bootstrap/3.3.5/css/bootstrap.min.css">
</head>
<body>
  <div class="navbar navbar-default">
    <div class="container">
      <div class="navbar-header">
        <div class="navbar-brand">Bookshelf</div>
      </div>
      <ul class="nav navbar-nav">
        <li><a href="/">Books</a></li>
      </ul>
    </div>
  </div>
  <div class="container">
`

const pageFooter = `
  </div>
</body>
</html>`

const landingPage = pageHeader + `
    <h3>Books</h3>
    <a href="/create" class="btn btn-success btn-sm">
      <i class="glyphicon glyphicon-plus"></i>
      Add book
    </a>
    <p>No books found</p>
` + pageFooter

const createPage = pageHeader + `
    <h3>Add book</h3>
    <form method="POST" action="/create" enctype="multipart/form-data">
      <div class="form-group">
        <label for="title">Title</label>
        <input type="text" name="title" id="title" value="" class="form-control" />
      </div>
      <div class="form-group">
        <label for="author">Author</label>
        <input type="text" name="author" id="author" value="" class="form-control" />
      </div>
      <div class="form-group">
        <label for="publishedDate">Date Published</label>
        <input type="text" name="publishedDate" id="publishedDate" value="" class="form-control" />
      </div>
      <div class="form-group">
        <label for="description">Description</label>
        <textarea name="description" id="description" class="form-control"></textarea>
      </div>
      <div class="form-group hidden">
        <label for="createdBy">Created By</label>
        <input type="text" name="createdBy" id="createdBy" value="" class="form-control" />
      </div>
      <div class="form-group hidden">
        <label for="createdById">Created By ID</label>
        <input type="text" name="createdById" id="createdById" value="" class="form-control" />
      </div>
      <button type="submit" class="btn btn-success">Save</button>
    </form>
` + pageFooter

const readPage = pageHeader + `
    <h3>Book</h3>
    <div class="btn-group">
      <a href="/update?id=5629499534213120" class="btn btn-primary btn-sm">
        <i class="glyphicon glyphicon-edit"></i>
        Edit book
      </a>
      <a href="/delete?id=5629499534213120" class="btn btn-danger btn-sm">
        <i class="glyphicon glyphicon-trash"></i>
        Delete book
      </a>
    </div>
    <div class="media">
      <div class="media-left">
        <img class="book-image" src="http://placekitten.com/g/128/192">
      </div>
      <div class="media-body">
        <h4 class="book-title">mytitle <small>1984-02-27</small></h4>
        <h5 class="book-author">By myauthor</h5>
        <p class="book-description">mydescription</p>
        <small class="book-added-by">Added by Anonymous</small>
      </div>
    </div>
` + pageFooter

const listPage = pageHeader + `
    <h3>Books</h3>
    <a href="/create" class="btn btn-success btn-sm">
      <i class="glyphicon glyphicon-plus"></i>
      Add book
    </a>
    <div class="media">
      <a href="/read?id=5629499534213120">
        <div class="media-left">
          <img src="http://placekitten.com/g/128/192">
        </div>
        <div class="media-body">
          <h4>mytitle</h4>
          <p>myauthor</p>
        </div>
      </a>
    </div>
` + pageFooter

func replaceOnce(page, old, new string) string {
	if !strings.Contains(page, old) {
		panic("fixture does not contain " + old)
	}
	return strings.Replace(page, old, new, 1)
}
