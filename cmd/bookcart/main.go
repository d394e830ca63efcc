package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/bookdragons/storefront/internal/cart"
	"github.com/bookdragons/storefront/internal/storefront"
)

const usage = `Usage: bookcart [flags] <command> [args]

Commands:
  books [--featured] [--limit N]     list books from the catalog
  add <slug>                         add one copy of a book to the cart
  set <id> <quantity>                change the quantity of a cart line (0 removes it)
  remove <id>                        remove a cart line
  show                               show the cart
  clear                              empty the cart
  checkout --name N --email E [--phone P]
                                     place an order for the cart
  order <orderNumber>                show a placed order

Flags:
`

func main() {
	_ = godotenv.Load(".env")

	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func defaultCartFile() string {
	if v := os.Getenv("CART_FILE"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "bookdragons-cart.json"
	}
	return filepath.Join(home, ".bookdragons", "cart.json")
}

func defaultBaseURL() string {
	if v := os.Getenv("BOOKSTORE_URL"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

func run(args []string, out io.Writer) error {
	flags := pflag.NewFlagSet("bookcart", pflag.ContinueOnError)
	flags.SetInterspersed(false)
	baseURL := flags.String("url", defaultBaseURL(), "bookstore API base URL (BOOKSTORE_URL)")
	cartFile := flags.String("cart", defaultCartFile(), "cart storage file (CART_FILE)")
	verbose := flags.BoolP("verbose", "v", false, "log debug output")
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return fmt.Errorf("missing command")
	}

	logger := zap.NewNop()
	if *verbose {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	store := cart.NewStore(cart.NewFileStorage(*cartFile, logger), logger)
	c := cart.New(store, cart.NewNotifier(), logger)
	client := storefront.NewClient(*baseURL, logger)

	// Re-render the summary whenever the cart changes
	unsubscribe := c.Notifier().Subscribe(func(event string) {
		items, err := c.Items()
		if err != nil {
			return
		}
		fmt.Fprintf(out, "[%s] %d items, total %d kr\n", event, cart.ItemCount(items), cart.Total(items))
	})
	defer unsubscribe()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd, rest := flags.Arg(0), flags.Args()[1:]
	switch cmd {
	case "books":
		return listBooks(ctx, client, rest, out)
	case "add":
		if len(rest) != 1 {
			return fmt.Errorf("usage: bookcart add <slug>")
		}
		book, err := client.GetBook(ctx, rest[0])
		if err != nil {
			return err
		}
		if book.Stock <= 0 {
			return fmt.Errorf("%s is out of stock", book.Title)
		}
		return c.AddToCart(cart.ItemInput{
			ID:    strconv.FormatInt(book.ID, 10),
			Slug:  book.Slug,
			Title: book.Title,
			Price: book.Price,
			Stock: book.Stock,
		})
	case "set":
		if len(rest) != 2 {
			return fmt.Errorf("usage: bookcart set <id> <quantity>")
		}
		quantity, err := strconv.Atoi(rest[1])
		if err != nil {
			return fmt.Errorf("quantity must be a number: %w", err)
		}
		return c.UpdateQuantity(rest[0], quantity)
	case "remove":
		if len(rest) != 1 {
			return fmt.Errorf("usage: bookcart remove <id>")
		}
		return c.RemoveFromCart(rest[0])
	case "show":
		return showCart(c, out)
	case "clear":
		return c.ClearCart()
	case "checkout":
		return checkout(ctx, c, client, rest, out)
	case "order":
		if len(rest) != 1 {
			return fmt.Errorf("usage: bookcart order <orderNumber>")
		}
		order, err := client.GetOrder(ctx, rest[0])
		if err != nil {
			return err
		}
		printOrder(out, order)
		return nil
	default:
		flags.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func listBooks(ctx context.Context, client *storefront.Client, args []string, out io.Writer) error {
	flags := pflag.NewFlagSet("books", pflag.ContinueOnError)
	featured := flags.Bool("featured", false, "only featured books")
	limit := flags.Int("limit", 0, "page size")
	if err := flags.Parse(args); err != nil {
		return err
	}

	query := url.Values{}
	query.Set("depth", "0")
	if *featured {
		query.Set("where[featured][equals]", "true")
	}
	if *limit > 0 {
		query.Set("limit", strconv.Itoa(*limit))
	}

	list, err := client.ListBooks(ctx, query)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSLUG\tTITLE\tPRICE\tSTOCK")
	for _, b := range list.Docs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d kr\t%d\n", b.ID, b.Slug, b.Title, b.Price, b.Stock)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "%d of %d books\n", len(list.Docs), list.TotalDocs)
	return nil
}

func showCart(c *cart.Cart, out io.Writer) error {
	items, err := c.Items()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(out, "Handlekurven er tom")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tPRICE\tQTY\tLINE\tNOTE")
	for _, item := range items {
		note := ""
		switch {
		case !item.Available():
			note = "unavailable"
		case !item.CanIncrement():
			note = "max stock"
		}
		fmt.Fprintf(w, "%s\t%s\t%d kr\t%d\t%d kr\t%s\n", item.ID, item.Title, item.Price, item.Quantity, item.LineTotal(), note)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Totalt: %d kr (%d items)\n", cart.Total(items), cart.ItemCount(items))
	return nil
}

func checkout(ctx context.Context, c *cart.Cart, client *storefront.Client, args []string, out io.Writer) error {
	flags := pflag.NewFlagSet("checkout", pflag.ContinueOnError)
	name := flags.String("name", "", "customer name")
	email := flags.String("email", "", "customer e-mail")
	phone := flags.String("phone", "", "customer phone (optional)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *name == "" || *email == "" {
		return fmt.Errorf("--name and --email are required")
	}

	order, err := c.Checkout(ctx, client, cart.Contact{Name: *name, Email: *email, Phone: *phone})
	if err != nil {
		return fmt.Errorf("noe gikk galt, vennligst prøv igjen: %w", err)
	}

	fmt.Fprintln(out, "Takk for din bestilling!")
	printOrder(out, order)
	return nil
}

func printOrder(out io.Writer, order *storefront.Order) {
	fmt.Fprintf(out, "Ordrenummer: %s\n", order.OrderNumber)
	fmt.Fprintf(out, "Status: %s\n", order.Status)
	fmt.Fprintf(out, "Kunde: %s <%s>\n", order.CustomerName, order.CustomerEmail)
	for _, line := range order.Items {
		fmt.Fprintf(out, "  bok #%d  %d x %d kr\n", line.Book, line.Quantity, line.Price)
	}
	fmt.Fprintf(out, "Totalt: %d kr\n", order.TotalAmount)
}
