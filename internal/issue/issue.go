// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	BlasNotFoundId Id = iota + 1
	HeaderNotFoundId
	ImportLibMissingId
	NoCblasApiId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	blasNotFoundIssue = &Issue{
		id: BlasNotFoundId,
		mdMsg: `
# No BLAS library found!

We searched every known install location but found no MKL, OpenBLAS,
ATLAS or GSL library, and nothing else that looks like a BLAS.

## Things you can try:
- Install a BLAS through your package manager:
~~~
$ pip install mkl mkl-devel
$ sudo apt install libopenblas-dev        # Debian/Ubuntu
$ sudo dnf install openblas-devel         # Fedora
$ brew install openblas                   # macOS
~~~

- Point at an existing install explicitly:
~~~
$ blasfind locate --path /opt/my-blas/lib
~~~

- Add permanent search paths to your config file:
~~~toml
search_paths = ["/opt/my-blas/lib"]
~~~`,
		extLinks: []HttpLink{
			"https://www.openblas.net/",
			"https://www.intel.com/content/www/us/en/developer/tools/oneapi/onemkl.html",
		},
	}

	headerNotFoundIssue = &Issue{
		id: HeaderNotFoundId,
		mdMsg: `
# Library found, but no matching header!

A BLAS library was located, but no usable C header was found next to it
or in any include directory. The result is still usable if your code
declares the prototypes itself.

## Things you can try:
- Install the development package that ships the headers:
~~~
$ sudo apt install libopenblas-dev        # Debian/Ubuntu
$ sudo dnf install openblas-devel         # Fedora
$ pip install mkl-devel                   # MKL via pip
~~~

- Pass an explicit include directory:
~~~
$ blasfind locate --include-path /opt/my-blas/include
~~~`,
	}

	importLibMissingIssue = &Issue{
		id: ImportLibMissingId,
		mdMsg: `
# Found a DLL but no import library!

MSVC cannot link directly against a DLL; it needs the matching .lib
import library, which is missing here.

## Things you can try:
- For MKL from pip, install the development files too:
~~~
$ pip install mkl-devel
~~~

- For conda environments, install the full package:
~~~
$ conda install mkl-devel
~~~`,
	}

	noCblasApiIssue = &Issue{
		id: NoCblasApiId,
		mdMsg: `
# This BLAS has no CBLAS interface!

The library only exports FORTRAN-style symbols (ddot_, sgemm_, ...) and
cannot back code written against the CBLAS API.

## Things you can try:
- Install a library that bundles CBLAS:
~~~
$ sudo apt install libopenblas-dev
~~~

- Or link a standalone CBLAS wrapper alongside the reference BLAS`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Your config file exists but could not be read or parsed.

## Things you can try:
- Check the TOML syntax of your config file
- Show the effective configuration and its origin:
~~~
$ blasfind config show
~~~

- Move the file aside to fall back to defaults`,
	}

	issues = map[Id]*Issue{
		blasNotFoundIssue.Id():     blasNotFoundIssue,
		headerNotFoundIssue.Id():   headerNotFoundIssue,
		importLibMissingIssue.Id(): importLibMissingIssue,
		noCblasApiIssue.Id():       noCblasApiIssue,
		configLoadFailedIssue.Id(): configLoadFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
