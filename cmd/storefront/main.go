// Command storefront is a terminal front end for the disc-golf shop. It
// keeps one signed-in session and drives the cart, checkout and lesson
// flows against the API server.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/discgolf/storefront/internal/core/domain"
	"github.com/discgolf/storefront/internal/infrastructure/config"
	"github.com/discgolf/storefront/internal/storefront/auth"
	"github.com/discgolf/storefront/internal/storefront/booking"
	"github.com/discgolf/storefront/internal/storefront/checkout"
	"github.com/discgolf/storefront/internal/storefront/client"
	"github.com/discgolf/storefront/internal/storefront/prompt"
	"github.com/discgolf/storefront/internal/storefront/session"
	"github.com/discgolf/storefront/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.LoadClient(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration:", err)
		os.Exit(1)
	}

	log := logger.Init(cfg.LogLevel, true, os.Stderr)

	stdin := bufio.NewScanner(os.Stdin)
	confirm := prompt.ConfirmerFunc(func(message string) bool {
		fmt.Println(message)
		fmt.Print("[y/N] > ")
		if !stdin.Scan() {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(stdin.Text()))
		return answer == "y" || answer == "yes"
	})
	notify := prompt.NotifierFunc(func(message string) {
		fmt.Println(message)
	})

	api := client.New(cfg.BaseURL, nil, log)
	store := session.NewStore()
	authFlow := auth.New(api, store, log)
	cart := checkout.New(api, store, confirm, notify, log)
	lessons := booking.New(api, store, confirm, notify, log)

	fmt.Println("Disc Golf Storefront — type 'help' for commands.")
	for {
		fmt.Printf("[%s] > ", store.Status())
		if !stdin.Scan() {
			return
		}
		fields := strings.Fields(stdin.Text())
		if len(fields) == 0 {
			continue
		}

		switch cmd, args := fields[0], fields[1:]; cmd {
		case "help":
			printHelp()
		case "quit", "exit":
			return

		case "login":
			if len(args) != 2 {
				fmt.Println("usage: login <username> <password>")
				continue
			}
			authFlow.Login(ctx, args[0], args[1])
			cart.Refresh(ctx)
		case "signup":
			if len(args) != 2 {
				fmt.Println("usage: signup <username> <password>")
				continue
			}
			authFlow.SignUp(ctx, args[0], args[1])
		case "logout":
			authFlow.Logout(ctx)
			cart.Refresh(ctx)

		case "discs":
			discs, err := api.Discs(ctx)
			if err != nil {
				fmt.Println("could not load discs:", err)
				continue
			}
			printDiscs(discs)
		case "search":
			if len(args) < 1 {
				fmt.Println("usage: search <term> [mode]")
				continue
			}
			mode := domain.FilterPrice
			if len(args) > 1 {
				if m, err := strconv.Atoi(args[1]); err == nil {
					mode = domain.FilterMode(m)
				}
			}
			discs, err := api.FilterDiscs(ctx, args[0], mode)
			if err != nil {
				fmt.Println("search failed:", err)
				continue
			}
			printDiscs(discs)

		case "cart":
			cart.Refresh(ctx)
			view := cart.View()
			printDiscs(view.Contents)
			fmt.Printf("%d items, total $%.2f\n", view.Count, view.Cost)
		case "add":
			withID(args, "add <disc id>", func(id int) {
				report(cart.AddToCart(ctx, id))
			})
		case "remove":
			withID(args, "remove <disc id>", func(id int) {
				report(cart.Remove(ctx, id))
			})
		case "qty":
			if len(args) != 2 {
				fmt.Println("usage: qty <disc id> <quantity>")
				continue
			}
			id, err1 := strconv.Atoi(args[0])
			quantity, err2 := strconv.Atoi(args[1])
			if err1 != nil || err2 != nil {
				fmt.Println("usage: qty <disc id> <quantity>")
				continue
			}
			report(cart.UpdateQuantity(ctx, id, quantity))
		case "buy":
			if _, err := cart.Purchase(ctx); err != nil {
				report(err)
			}
		case "buyone":
			withID(args, "buyone <disc id>", func(id int) {
				if _, err := cart.PurchaseOne(ctx, id); err != nil {
					report(err)
				}
			})

		case "lessons":
			var (
				list []domain.Lesson
				err  error
			)
			if len(args) > 0 {
				list, err = lessons.BrowseDate(ctx, args[0])
			} else {
				list, err = lessons.Browse(ctx)
			}
			if err != nil {
				fmt.Println("could not load lessons:", err)
				continue
			}
			printLessons(list)
		case "mylessons":
			list, err := lessons.Mine(ctx)
			if err != nil {
				report(err)
				continue
			}
			printLessons(list)
		case "book":
			withID(args, "book <lesson id>", func(id int) {
				report(lessons.Subscribe(ctx, id))
			})
		case "unbook":
			withID(args, "unbook <lesson id>", func(id int) {
				report(lessons.Unsubscribe(ctx, id))
			})

		default:
			fmt.Println("unknown command; type 'help'")
		}
	}
}

func withID(args []string, usage string, fn func(id int)) {
	if len(args) != 1 {
		fmt.Println("usage:", usage)
		return
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Println("usage:", usage)
		return
	}
	fn(id)
}

func report(err error) {
	switch err {
	case nil, checkout.ErrDeclined, booking.ErrDeclined:
		// declining is a normal outcome, nothing to say
	case checkout.ErrNotSignedIn, booking.ErrNotSignedIn:
		fmt.Println("You need to be signed in to do that.")
	default:
		fmt.Println("That didn't work:", err)
	}
}

func printDiscs(discs []domain.Disc) {
	if len(discs) == 0 {
		fmt.Println("(nothing here)")
		return
	}
	for _, d := range discs {
		fmt.Printf("#%d  %s %s  %dg  $%.2f  (qty %d)\n",
			d.ID, d.Color, d.Type, d.Weight, d.Price, d.Quantity)
	}
}

func printLessons(lessons []domain.Lesson) {
	if len(lessons) == 0 {
		fmt.Println("(nothing here)")
		return
	}
	for _, l := range lessons {
		subscriber := "open"
		if l.Claimed() {
			subscriber = "booked by " + l.Subscriber()
		}
		fmt.Printf("#%d  %s every %s, %s to %s  $%.2f  [%s]\n",
			l.ID, l.Title, l.Days, l.StartDate, l.EndDate, l.Price, subscriber)
	}
}

func printHelp() {
	fmt.Print(`commands:
  login <user> <pass>     sign in
  signup <user> <pass>    create an account
  logout                  sign out
  discs                   list the catalog
  search <term> [mode]    filter discs (0 all, 1 type, 2 color, 3 weight, 4 price)
  cart                    show your cart
  add <id>                add a disc to your cart
  remove <id>             remove a disc from your cart
  qty <id> <n>            set a line's quantity (0 removes)
  buy                     purchase the whole cart
  buyone <id>             purchase a single line
  lessons [YYYY-MM-DD]    list lessons, optionally by date
  mylessons               lessons you have booked
  book <id>               subscribe to a lesson
  unbook <id>             unsubscribe from a lesson
  quit                    leave
`)
}
