package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lorenawear/loja/internal/domain"
)

var (
	shopCategory  string
	shopBrand     string
	shopQuery     string
	shopPage      int
	shopLimit     int
	shopAccessory bool
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Listar productos del catálogo",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := application.Catalog.List(cmd.Context(), domain.ProductFilter{
			Query:       shopQuery,
			Category:    shopCategory,
			Brand:       shopBrand,
			IsAccessory: shopAccessory,
			Page:        shopPage,
			PageSize:    shopLimit,
		})
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Println("Sin resultados.")
			return nil
		}
		for _, p := range list {
			printProduct(&p)
		}
		return nil
	},
}

var productCmd = &cobra.Command{
	Use:   "product <id>",
	Short: "Detalle de un producto, con variaciones y reseñas",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := application.Catalog.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printProduct(p)
		reviews, err := application.Catalog.Reviews(cmd.Context(), p.ID)
		if err == nil && len(reviews) > 0 {
			fmt.Println("\nReseñas:")
			for _, r := range reviews {
				fmt.Printf("  %d/5  %s — %s\n", r.Rating, r.Comment, r.Author)
			}
		}
		return nil
	},
}

var (
	reviewRating  int
	reviewComment string
)

var reviewCmd = &cobra.Command{
	Use:   "review <productID>",
	Short: "Dejar una reseña de un producto",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := application.Catalog.AddReview(cmd.Context(), domain.Review{
			ProductID: args[0],
			Rating:    reviewRating,
			Comment:   reviewComment,
		})
		if err != nil {
			return err
		}
		fmt.Println("Reseña enviada.")
		return nil
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Listar categorías",
	RunE: func(cmd *cobra.Command, args []string) error {
		cats, err := application.Catalog.Categories(cmd.Context())
		if err != nil {
			return err
		}
		for _, c := range cats {
			fmt.Println(c)
		}
		return nil
	},
}

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "Mostrar los talles y colores disponibles para filtrar",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := application.Catalog.Filters(cmd.Context())
		if err != nil {
			return err
		}
		if len(f.Sizes) > 0 {
			fmt.Println("Talles:")
			for _, s := range f.Sizes {
				fmt.Println("  " + s)
			}
		}
		if len(f.Colors) > 0 {
			fmt.Println("Colores:")
			for _, c := range f.Colors {
				if c.Hex != "" {
					fmt.Printf("  %-16s %s\n", c.Name, c.Hex)
				} else {
					fmt.Println("  " + c.Name)
				}
			}
		}
		return nil
	},
}

var brandsCmd = &cobra.Command{
	Use:   "brands",
	Short: "Listar marcas",
	RunE: func(cmd *cobra.Command, args []string) error {
		brands, err := application.Catalog.Brands(cmd.Context())
		if err != nil {
			return err
		}
		for _, b := range brands {
			fmt.Println(b)
		}
		return nil
	},
}

func init() {
	shopCmd.Flags().StringVar(&shopCategory, "category", "", "filtrar por categoría")
	shopCmd.Flags().StringVar(&shopBrand, "brand", "", "filtrar por marca")
	shopCmd.Flags().StringVarP(&shopQuery, "query", "q", "", "búsqueda de texto")
	shopCmd.Flags().IntVar(&shopPage, "page", 0, "página")
	shopCmd.Flags().IntVar(&shopLimit, "limit", 0, "resultados por página")
	shopCmd.Flags().BoolVar(&shopAccessory, "accessories", false, "sólo accesorios")
	reviewCmd.Flags().IntVar(&reviewRating, "rating", 5, "puntaje 1 a 5")
	reviewCmd.Flags().StringVar(&reviewComment, "comment", "", "comentario")

	rootCmd.AddCommand(shopCmd, productCmd, reviewCmd, categoriesCmd, brandsCmd, filtersCmd)
}
